package models

import (
	"log"

	"github.com/abolajiii/LMBE/config"
)

func MigrateTable() {
	db := config.GetDB()

	err := db.AutoMigrate(
		&Business{},
		&Transaction{}, &Job{},
		&Client{},
		&DailyExpense{}, &ExpenseItem{},
	)
	if err != nil {
		log.Fatal(err)
	}
}
