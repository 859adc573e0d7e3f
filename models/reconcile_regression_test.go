package models_test

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/abolajiii/LMBE/config"
	"github.com/abolajiii/LMBE/models"
	"github.com/abolajiii/LMBE/utils"
	"github.com/shopspring/decimal"
)

// Full reconcile path against real MySQL and Redis: book a day of jobs,
// mutate them one by one, and check that the day's aggregate row and the
// client rollup always match what the jobs say.
func TestReconcileDayAggregates(t *testing.T) {
	if strings.TrimSpace(os.Getenv("INTEGRATION_TESTS")) == "" {
		t.Skip("set INTEGRATION_TESTS=1 to run integration tests (requires docker)")
	}

	ctx := context.Background()

	redisName, redisPort := startRedisContainer(t)
	t.Cleanup(func() { _ = dockerRmForce(redisName) })

	mysqlName, mysqlPort := startMySQLContainer(t)
	t.Cleanup(func() { _ = dockerRmForce(mysqlName) })

	t.Setenv("REDIS_ADDRESS", fmt.Sprintf("127.0.0.1:%s", redisPort))
	t.Setenv("DB_USER", "root")
	t.Setenv("DB_PASSWORD", "testpw")
	t.Setenv("DB_HOST", "127.0.0.1")
	t.Setenv("DB_PORT", mysqlPort)
	t.Setenv("DB_NAME", "lmbe_test")

	config.ConnectDatabaseWithRetry()
	config.ConnectRedisWithRetry()
	models.MigrateTable()

	biz, err := models.CreateBusiness(ctx, &models.NewBusiness{
		Name:     "Swift Riders",
		Location: "Lagos",
	})
	if err != nil {
		t.Fatalf("CreateBusiness: %v", err)
	}
	ctx = utils.SetBusinessIdInContext(ctx, biz.ID.String())

	day := time.Date(2026, 2, 10, 9, 30, 0, 0, time.UTC)
	txn, err := models.CreateJobsForDay(ctx, &models.NewDayJobs{
		Date:         day,
		CustomerName: "Mama K Stores",
		PickUp:       "Balogun Market",
		Deliveries: []*models.NewDelivery{
			{Location: "Surulere", Amount: decimal.NewFromInt(2000), Payer: "Pick Up"},
			{Location: "Yaba", Amount: decimal.NewFromInt(1500), Payer: "vendor"},
			{Location: "Ikeja", Amount: decimal.NewFromInt(3000), Payer: "on delivery"},
		},
	})
	if err != nil {
		t.Fatalf("CreateJobsForDay: %v", err)
	}
	if txn.NumberOfJobs != 3 {
		t.Fatalf("number_of_jobs = %d, want 3", txn.NumberOfJobs)
	}
	if txn.PaymentStatus != models.PaymentStatusNotPaid {
		t.Fatalf("payment_status = %s, want not-paid", txn.PaymentStatus)
	}
	if !txn.TotalJobAmount.Equal(decimal.NewFromInt(6500)) {
		t.Fatalf("total_job_amount = %s, want 6500", txn.TotalJobAmount)
	}
	if len(txn.Jobs) != 3 {
		t.Fatalf("expected 3 jobs preloaded, got %d", len(txn.Jobs))
	}
	for _, job := range txn.Jobs {
		switch job.Delivery {
		case "Surulere":
			if job.Payer != models.PayerPickUp {
				t.Fatalf("payer = %q, want pick-up", job.Payer)
			}
		case "Ikeja":
			if job.Payer != models.PayerDelivery {
				t.Fatalf("payer = %q, want delivery", job.Payer)
			}
		}
	}

	// Same day, same customer: jobs pile onto the existing transaction.
	txn, err = models.CreateJobsForDay(ctx, &models.NewDayJobs{
		Date:         day,
		CustomerName: "Mama K Stores",
		PickUp:       "Balogun Market",
		Deliveries: []*models.NewDelivery{
			{Location: "Ajah", Amount: decimal.NewFromInt(4000), Payer: "vendor"},
		},
	})
	if err != nil {
		t.Fatalf("CreateJobsForDay (second batch): %v", err)
	}
	if txn.NumberOfJobs != 4 {
		t.Fatalf("number_of_jobs = %d, want 4", txn.NumberOfJobs)
	}

	// Pay one of four jobs; the day stays not-paid until every job is paid.
	paid := models.PaymentStatusPaid
	var ajahJob *models.Job
	for _, job := range txn.Jobs {
		if job.Delivery == "Ajah" {
			ajahJob = job
		}
	}
	if ajahJob == nil {
		t.Fatal("ajah job missing from transaction")
	}
	if _, err := models.UpdateJob(ctx, ajahJob.ID, &models.JobPatch{PaymentStatus: &paid}); err != nil {
		t.Fatalf("UpdateJob: %v", err)
	}
	txn, err = models.GetTransaction(ctx, txn.ID)
	if err != nil {
		t.Fatalf("GetTransaction: %v", err)
	}
	if txn.PaymentStatus != models.PaymentStatusNotPaid {
		t.Fatalf("payment_status = %s, want not-paid", txn.PaymentStatus)
	}
	if !txn.TotalAmountPaid.Equal(decimal.NewFromInt(4000)) {
		t.Fatalf("total_amount_paid = %s, want 4000", txn.TotalAmountPaid)
	}

	// Mark everything paid and done in one shot.
	txn, err = models.BulkUpdateTransactionJobs(ctx, txn.ID, true, true)
	if err != nil {
		t.Fatalf("BulkUpdateTransactionJobs: %v", err)
	}
	if txn.PaymentStatus != models.PaymentStatusPaid {
		t.Fatalf("payment_status = %s, want paid", txn.PaymentStatus)
	}
	if txn.NumberOfPaidJobs != 4 {
		t.Fatalf("number_of_paid_jobs = %d, want 4", txn.NumberOfPaidJobs)
	}
	for _, job := range txn.Jobs {
		if job.JobStatus != models.JobStatusDone {
			t.Fatalf("job %d status = %s, want done", job.ID, job.JobStatus)
		}
	}

	// Client rollup tracks every booked job.
	clients, err := models.ListClients(ctx)
	if err != nil {
		t.Fatalf("ListClients: %v", err)
	}
	if len(clients) != 1 {
		t.Fatalf("expected 1 client, got %d", len(clients))
	}
	if clients[0].TotalJobs != 4 {
		t.Fatalf("client total_jobs = %d, want 4", clients[0].TotalJobs)
	}
	if !clients[0].TotalJobAmount.Equal(decimal.NewFromInt(10500)) {
		t.Fatalf("client total_job_amount = %s, want 10500", clients[0].TotalJobAmount)
	}
	if clients[0].LastJobDate == nil {
		t.Fatal("client last_job_date is nil")
	}

	// Deleting a job shrinks both rollups.
	if _, err := models.DeleteJob(ctx, ajahJob.ID); err != nil {
		t.Fatalf("DeleteJob: %v", err)
	}
	txn, err = models.GetTransaction(ctx, txn.ID)
	if err != nil {
		t.Fatalf("GetTransaction after delete: %v", err)
	}
	if txn.NumberOfJobs != 3 {
		t.Fatalf("number_of_jobs = %d after delete, want 3", txn.NumberOfJobs)
	}
	if !txn.TotalJobAmount.Equal(decimal.NewFromInt(6500)) {
		t.Fatalf("total_job_amount = %s after delete, want 6500", txn.TotalJobAmount)
	}

	// A booking on a later day moves the client's last job date forward.
	lagos, err := time.LoadLocation("Africa/Lagos")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	laterDay := day.AddDate(0, 0, 2)
	laterTxn, err := models.CreateJobsForDay(ctx, &models.NewDayJobs{
		Date:         laterDay,
		CustomerName: "Mama K Stores",
		PickUp:       "Balogun Market",
		Deliveries: []*models.NewDelivery{
			{Location: "Lekki", Amount: decimal.NewFromInt(2500), Payer: "vendor"},
		},
	})
	if err != nil {
		t.Fatalf("CreateJobsForDay (later day): %v", err)
	}
	if len(laterTxn.Jobs) != 1 {
		t.Fatalf("expected 1 job on later day, got %d", len(laterTxn.Jobs))
	}
	clients, err = models.ListClients(ctx)
	if err != nil {
		t.Fatalf("ListClients after later booking: %v", err)
	}
	if clients[0].LastJobDate == nil {
		t.Fatal("client last_job_date is nil after later booking")
	}
	if got := clients[0].LastJobDate.In(lagos).Format("2006-01-02"); got != "2026-02-12" {
		t.Fatalf("client last_job_date = %s, want 2026-02-12", got)
	}

	// Deleting the newest job falls the rollup back to the older day's max.
	if _, err := models.DeleteJob(ctx, laterTxn.Jobs[0].ID); err != nil {
		t.Fatalf("DeleteJob (later day): %v", err)
	}
	clients, err = models.ListClients(ctx)
	if err != nil {
		t.Fatalf("ListClients after later delete: %v", err)
	}
	if clients[0].LastJobDate == nil {
		t.Fatal("client last_job_date is nil after later delete")
	}
	if got := clients[0].LastJobDate.In(lagos).Format("2006-01-02"); got != "2026-02-10" {
		t.Fatalf("client last_job_date = %s, want 2026-02-10", got)
	}

	// Deleting every remaining job returns the day to a void transaction and
	// empties the client rollup.
	txn, err = models.GetTransaction(ctx, txn.ID)
	if err != nil {
		t.Fatalf("GetTransaction before teardown: %v", err)
	}
	for _, job := range txn.Jobs {
		if _, err := models.DeleteJob(ctx, job.ID); err != nil {
			t.Fatalf("DeleteJob %d: %v", job.ID, err)
		}
	}
	txn, err = models.GetTransaction(ctx, txn.ID)
	if err != nil {
		t.Fatalf("GetTransaction after teardown: %v", err)
	}
	if txn.NumberOfJobs != 0 || txn.NumberOfPaidJobs != 0 {
		t.Fatalf("counts after teardown: jobs=%d paid=%d, want 0/0", txn.NumberOfJobs, txn.NumberOfPaidJobs)
	}
	if !txn.TotalJobAmount.IsZero() || !txn.TotalAmountPaid.IsZero() {
		t.Fatalf("sums after teardown: amount=%s paid=%s, want 0/0", txn.TotalJobAmount, txn.TotalAmountPaid)
	}
	if txn.PaymentStatus != models.PaymentStatusVoid {
		t.Fatalf("payment_status = %s after teardown, want void", txn.PaymentStatus)
	}
	clients, err = models.ListClients(ctx)
	if err != nil {
		t.Fatalf("ListClients after teardown: %v", err)
	}
	if clients[0].TotalJobs != 0 {
		t.Fatalf("client total_jobs = %d after teardown, want 0", clients[0].TotalJobs)
	}
	if clients[0].LastJobDate != nil {
		t.Fatalf("client last_job_date = %v after teardown, want nil", clients[0].LastJobDate)
	}

	// Expense buckets accumulate within the day.
	expense, err := models.LogExpenses(ctx, day, []*models.NewExpenseItem{
		{Label: "fuel", Amount: decimal.NewFromInt(800)},
		{Label: "tolls", Amount: decimal.NewFromInt(200)},
	})
	if err != nil {
		t.Fatalf("LogExpenses: %v", err)
	}
	expense, err = models.LogExpenses(ctx, day, []*models.NewExpenseItem{
		{Label: "repairs", Amount: decimal.NewFromInt(1500)},
	})
	if err != nil {
		t.Fatalf("LogExpenses (second): %v", err)
	}
	if !expense.TotalAmount.Equal(decimal.NewFromInt(2500)) {
		t.Fatalf("expense total_amount = %s, want 2500", expense.TotalAmount)
	}
	if len(expense.Items) != 3 {
		t.Fatalf("expected 3 expense items, got %d", len(expense.Items))
	}
	if expense.NumberOfExpenses != 3 {
		t.Fatalf("number_of_expenses = %d, want 3", expense.NumberOfExpenses)
	}
}

func startRedisContainer(t *testing.T) (containerName, hostPort string) {
	t.Helper()
	name := fmt.Sprintf("lmbe-test-redis-%d", time.Now().UnixNano())
	out, err := dockerRun(
		"run", "-d", "--name", name,
		"-p", "127.0.0.1:0:6379",
		"redis:7-alpine",
	)
	if err != nil {
		t.Fatalf("start redis container: %v\n%s", err, out)
	}
	port, err := dockerHostPort(name, "6379/tcp")
	if err != nil {
		t.Fatalf("redis docker port: %v", err)
	}
	deadline := time.Now().Add(60 * time.Second)
	for time.Now().Before(deadline) {
		_, err := dockerRun("exec", name, "redis-cli", "ping")
		if err == nil {
			return name, port
		}
		time.Sleep(250 * time.Millisecond)
	}
	t.Fatalf("redis did not become ready")
	return "", ""
}

func startMySQLContainer(t *testing.T) (containerName, hostPort string) {
	t.Helper()
	name := fmt.Sprintf("lmbe-test-mysql-%d", time.Now().UnixNano())
	out, err := dockerRun(
		"run", "-d", "--name", name,
		"-e", "MYSQL_ROOT_PASSWORD=testpw",
		"-e", "MYSQL_DATABASE=lmbe_test",
		"-p", "127.0.0.1:0:3306",
		"mysql:8.0",
		"--default-authentication-plugin=mysql_native_password",
	)
	if err != nil {
		t.Fatalf("start mysql container: %v\n%s", err, out)
	}
	port, err := dockerHostPort(name, "3306/tcp")
	if err != nil {
		t.Fatalf("mysql docker port: %v", err)
	}
	deadline := time.Now().Add(120 * time.Second)
	for time.Now().Before(deadline) {
		_, err := dockerRun("exec", name, "mysqladmin", "ping", "-h", "127.0.0.1", "-ptestpw", "--silent")
		if err == nil {
			return name, port
		}
		time.Sleep(500 * time.Millisecond)
	}
	t.Fatalf("mysql did not become ready")
	return "", ""
}

func dockerHostPort(container, portProto string) (string, error) {
	out, err := dockerRun("port", container, portProto)
	if err != nil {
		return "", fmt.Errorf("docker port: %w: %s", err, out)
	}
	re := regexp.MustCompile(`:(\d+)`)
	m := re.FindStringSubmatch(out)
	if len(m) != 2 {
		return "", fmt.Errorf("unexpected docker port output: %q", out)
	}
	return m[1], nil
}

func dockerRmForce(container string) error {
	if strings.TrimSpace(container) == "" {
		return nil
	}
	_, err := dockerRun("rm", "-f", container)
	return err
}

func dockerRun(args ...string) (string, error) {
	cmd := exec.Command("docker", args...)
	b, err := cmd.CombinedOutput()
	return string(b), err
}
