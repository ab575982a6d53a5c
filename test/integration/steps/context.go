// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	usecaseaccount "github.com/finance-ledger/backend/internal/application/usecase/account"
	"github.com/finance-ledger/backend/internal/application/usecase/ledger"
	"github.com/finance-ledger/backend/internal/application/usecase/recurrence"
	"github.com/finance-ledger/backend/internal/domain/entity"
	"github.com/finance-ledger/backend/internal/infra/server/router"
	"github.com/finance-ledger/backend/internal/integration/adapters"
	"github.com/finance-ledger/backend/internal/integration/entrypoint/controller"
	"github.com/finance-ledger/backend/internal/integration/entrypoint/middleware"
	"github.com/finance-ledger/backend/internal/integration/persistence"
	"github.com/finance-ledger/backend/internal/integration/persistence/model"
	"github.com/finance-ledger/backend/internal/integration/scheduler"
	"github.com/finance-ledger/backend/test/integration/mock"
)

const testJWTSecret = "test-jwt-secret-key-for-testing-purposes"

type testContext struct {
	uri             string
	headers         map[string]string
	client          *http.Client
	response        *response
	db              *mock.Db
	serverPort      int
	accessToken     string
	currentUserID   uuid.UUID
	accountIDs      map[string]uuid.UUID
	currentAccount  uuid.UUID
	lastTransaction uuid.UUID
	lastRecurring   uuid.UUID
}

type response struct {
	status int
	body   any
}

var serverInit sync.Once
var testDB *mock.Db
var testServerPort int
var portInit sync.Once
var testCatchUp *recurrence.CatchUpUseCase
var testWorker *scheduler.Worker

func initializePort() {
	portInit.Do(func() {
		testServerPort = findAvailablePort()
		_ = os.Setenv("SERVER_PORT", strconv.Itoa(testServerPort))
		_ = os.Setenv("ENV", "test")
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	initializePort()

	test := &testContext{
		uri:        fmt.Sprintf("http://localhost:%d", testServerPort),
		client:     &http.Client{Timeout: 10 * time.Second},
		serverPort: testServerPort,
		db: mock.NewDb("finance_ledger", map[string]any{
			"accounts":               &model.AccountModel{},
			"transactions":           &model.TransactionModel{},
			"recurring_transactions": &model.RecurringTransactionModel{},
		}),
	}

	testDB = test.db

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		test.before()
		return ctx, nil
	})

	// Background steps
	ctx.Given(`^the API server is running$`, test.theAPIServerIsRunning)

	// Auth setup steps
	ctx.Given(`^a user is authenticated$`, test.aUserIsAuthenticated)
	ctx.Given(`^the header is empty$`, test.theHeaderIsEmpty)
	ctx.Given(`^the header contains the key "([^"]*)" with "([^"]*)"$`, test.theHeaderContainsTheKeyWith)

	// Account setup steps
	ctx.Given(`^a bank account "([^"]*)" exists with balance "([^"]*)"$`, test.aBankAccountExistsWithBalance)
	ctx.Given(`^a credit account "([^"]*)" exists with limit "([^"]*)" and balance "([^"]*)"$`, test.aCreditAccountExistsWithLimitAndBalance)

	// Transaction setup steps
	ctx.Given(`^an expense of "([^"]*)" exists on account "([^"]*)"$`, test.anExpenseExistsOnAccount)

	// Recurring schedule setup steps
	ctx.Given(`^a monthly recurring expense "([^"]*)" of "([^"]*)" on account "([^"]*)" is next due on "([^"]*)"$`, test.aMonthlyRecurringExpenseIsNextDueOn)
	ctx.Given(`^a monthly recurring expense "([^"]*)" of "([^"]*)" on account "([^"]*)" is due yesterday$`, test.aMonthlyRecurringExpenseIsDueYesterday)

	// Request steps
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)

	// Scheduler steps
	ctx.When(`^the recurring scheduler catches up as of "([^"]*)"$`, test.theRecurringSchedulerCatchesUpAsOf)
	ctx.When(`^the scheduler worker runs$`, test.theSchedulerWorkerRuns)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response should be JSON$`, test.theResponseShouldBeJSON)
	ctx.Then(`^the response should contain "([^"]*)"$`, test.theResponseShouldContain)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)

	// Database assertion steps
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, test.theDbShouldContainObjectsInTheTable)
	ctx.Then(`^the db should contain (\d+) objects in "([^"]*)" with the values$`, test.theDbShouldContainObjectsInWithTheValues)
	ctx.Then(`^the account "([^"]*)" balance should be "([^"]*)"$`, test.theAccountBalanceShouldBe)
	ctx.Then(`^the account "([^"]*)" available credit should be "([^"]*)"$`, test.theAccountAvailableCreditShouldBe)
}

func findAvailablePort() int {
	listener, err := net.Listen("tcp", ":0")
	if err != nil {
		panic(err)
	}
	defer listener.Close()
	return listener.Addr().(*net.TCPAddr).Port
}

func (t *testContext) before() {
	t.headers = make(map[string]string)
	t.accessToken = ""
	t.currentUserID = uuid.Nil
	t.accountIDs = make(map[string]uuid.UUID)
	t.currentAccount = uuid.Nil
	t.lastTransaction = uuid.Nil
	t.lastRecurring = uuid.Nil

	if t.db != nil {
		_ = t.db.ClearDB()
	}
}

func (t *testContext) startServer() {
	serverInit.Do(func() {
		go func() {
			gin.SetMode(gin.TestMode)

			// Create repositories
			accountRepo := persistence.NewAccountRepository(testDB.DbConn)
			transactionRepo := persistence.NewTransactionRepository(testDB.DbConn)
			recurringRepo := persistence.NewRecurringTransactionRepository(testDB.DbConn)

			// Create adapters/services
			tokenService := adapters.NewTokenService(testJWTSecret)
			clock := adapters.NewSystemClock()

			// Create account use cases
			createAccountUseCase := usecaseaccount.NewCreateAccountUseCase(accountRepo)
			getAccountUseCase := usecaseaccount.NewGetAccountUseCase(accountRepo)
			listAccountsUseCase := usecaseaccount.NewListAccountsUseCase(accountRepo)
			deleteAccountUseCase := usecaseaccount.NewDeleteAccountUseCase(accountRepo)

			// Create ledger use cases
			postTransactionUseCase := ledger.NewPostTransactionUseCase(transactionRepo)
			updateTransactionUseCase := ledger.NewUpdateTransactionUseCase(transactionRepo)
			deleteTransactionUseCase := ledger.NewDeleteTransactionUseCase(transactionRepo)
			bulkPostUseCase := ledger.NewBulkPostUseCase(transactionRepo)

			// Create recurrence use cases
			createRecurringUseCase := recurrence.NewCreateRecurringUseCase(recurringRepo, clock)
			updateRecurringUseCase := recurrence.NewUpdateRecurringUseCase(recurringRepo, clock)
			deleteRecurringUseCase := recurrence.NewDeleteRecurringUseCase(recurringRepo)
			listRecurringUseCase := recurrence.NewListRecurringUseCase(recurringRepo)
			testCatchUp = recurrence.NewCatchUpUseCase(recurringRepo, clock)

			// Create scheduler worker backed by a miniredis lock
			schedulerLock := scheduler.NewRedisLock(mock.NewRedis())
			testWorker = scheduler.NewWorker(testCatchUp, schedulerLock, scheduler.DefaultWorkerConfig())

			// Create controllers
			healthController := controller.NewHealthController(func() bool {
				return testDB != nil && testDB.DbConn != nil
			})

			accountController := controller.NewAccountController(
				createAccountUseCase,
				getAccountUseCase,
				listAccountsUseCase,
				deleteAccountUseCase,
			)

			transactionController := controller.NewTransactionController(
				postTransactionUseCase,
				updateTransactionUseCase,
				deleteTransactionUseCase,
				bulkPostUseCase,
			)

			recurringController := controller.NewRecurringTransactionController(
				createRecurringUseCase,
				updateRecurringUseCase,
				deleteRecurringUseCase,
				listRecurringUseCase,
			)

			// Create middleware
			bulkRateLimiter := middleware.NewRateLimiter()
			authMiddleware := middleware.NewAuthMiddleware(tokenService)

			r := router.NewRouter(healthController, accountController, transactionController, recurringController, bulkRateLimiter, authMiddleware)
			engine := r.Setup("test")

			addr := fmt.Sprintf(":%d", testServerPort)
			server := &http.Server{
				Addr:    addr,
				Handler: engine,
			}

			_ = server.ListenAndServe()
		}()
	})

	// Wait for server to be ready
	for i := 0; i < 50; i++ {
		resp, err := http.Get(t.uri + "/health")
		if err == nil && resp.StatusCode == http.StatusOK {
			resp.Body.Close()
			return
		}
		time.Sleep(100 * time.Millisecond)
	}
}

func (t *testContext) theAPIServerIsRunning() error {
	t.startServer()
	return nil
}

func (t *testContext) aUserIsAuthenticated() error {
	t.currentUserID = uuid.New()

	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"user_id":    t.currentUserID.String(),
		"email":      "test@example.com",
		"token_type": "access",
		"exp":        jwt.NewNumericDate(now.Add(15 * time.Minute)),
		"iat":        jwt.NewNumericDate(now),
		"nbf":        jwt.NewNumericDate(now),
		"iss":        "finance-ledger",
		"sub":        t.currentUserID.String(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(testJWTSecret))
	if err != nil {
		return fmt.Errorf("failed to generate access token: %w", err)
	}
	t.accessToken = tokenString
	return nil
}

func (t *testContext) theHeaderIsEmpty() error {
	t.headers = make(map[string]string)
	t.accessToken = ""
	return nil
}

func (t *testContext) theHeaderContainsTheKeyWith(key, value string) error {
	t.headers[key] = value
	return nil
}

func (t *testContext) aBankAccountExistsWithBalance(name, balance string) error {
	amount, err := decimal.NewFromString(balance)
	if err != nil {
		return fmt.Errorf("invalid balance '%s': %w", balance, err)
	}

	account := entity.NewBankAccount(t.currentUserID, name, amount)
	if err := persistence.NewAccountRepository(t.db.DbConn).Create(context.Background(), account); err != nil {
		return err
	}

	t.accountIDs[name] = account.ID
	t.currentAccount = account.ID
	return nil
}

func (t *testContext) aCreditAccountExistsWithLimitAndBalance(name, limit, balance string) error {
	creditLimit, err := decimal.NewFromString(limit)
	if err != nil {
		return fmt.Errorf("invalid limit '%s': %w", limit, err)
	}
	currentBalance, err := decimal.NewFromString(balance)
	if err != nil {
		return fmt.Errorf("invalid balance '%s': %w", balance, err)
	}

	account := entity.NewCreditAccount(t.currentUserID, name, creditLimit, currentBalance)
	if err := persistence.NewAccountRepository(t.db.DbConn).Create(context.Background(), account); err != nil {
		return err
	}

	t.accountIDs[name] = account.ID
	t.currentAccount = account.ID
	return nil
}

func (t *testContext) anExpenseExistsOnAccount(amount, accountName string) error {
	accountID, ok := t.accountIDs[accountName]
	if !ok {
		return fmt.Errorf("account '%s' not found", accountName)
	}

	var accountModel model.AccountModel
	if err := t.db.DbConn.Where("id = ?", accountID).First(&accountModel).Error; err != nil {
		return fmt.Errorf("account '%s' not in database: %w", accountName, err)
	}

	value, err := decimal.NewFromString(amount)
	if err != nil {
		return fmt.Errorf("invalid amount '%s': %w", amount, err)
	}

	kind := entity.AccountKind(accountModel.Kind)
	transaction := entity.NewTransaction(
		t.currentUserID,
		accountID,
		kind,
		time.Now().UTC().Truncate(24*time.Hour),
		"Seeded expense",
		value,
		entity.TransactionTypeExpense,
	)

	delta := ledger.BalanceEffect(kind, entity.TransactionTypeExpense, value)
	if err := persistence.NewTransactionRepository(t.db.DbConn).CreateWithBalanceEffect(context.Background(), transaction, delta); err != nil {
		return err
	}

	t.lastTransaction = transaction.ID
	return nil
}

func (t *testContext) seedMonthlyRecurringExpense(name, amount, accountName string, nextProcessDate time.Time) error {
	accountID, ok := t.accountIDs[accountName]
	if !ok {
		return fmt.Errorf("account '%s' not found", accountName)
	}

	value, err := decimal.NewFromString(amount)
	if err != nil {
		return fmt.Errorf("invalid amount '%s': %w", amount, err)
	}

	recurring := entity.NewRecurringTransaction(
		t.currentUserID,
		accountID,
		entity.AccountKindBank,
		value,
		entity.TransactionTypeExpense,
		name,
		entity.FrequencyMonthly,
		nextProcessDate,
	)
	recurring.NextProcessDate = nextProcessDate

	if err := persistence.NewRecurringTransactionRepository(t.db.DbConn).Create(context.Background(), recurring); err != nil {
		return err
	}

	t.lastRecurring = recurring.ID
	return nil
}

func (t *testContext) aMonthlyRecurringExpenseIsNextDueOn(name, amount, accountName, date string) error {
	nextProcessDate, err := time.Parse("2006-01-02", date)
	if err != nil {
		return fmt.Errorf("invalid date '%s': %w", date, err)
	}
	return t.seedMonthlyRecurringExpense(name, amount, accountName, nextProcessDate)
}

func (t *testContext) aMonthlyRecurringExpenseIsDueYesterday(name, amount, accountName string) error {
	yesterday := time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, -1)
	return t.seedMonthlyRecurringExpense(name, amount, accountName, yesterday)
}

func (t *testContext) theRecurringSchedulerCatchesUpAsOf(date string) error {
	if testCatchUp == nil {
		return errors.New("scheduler not initialized, is the API server running?")
	}

	asOf, err := time.Parse("2006-01-02", date)
	if err != nil {
		return fmt.Errorf("invalid date '%s': %w", date, err)
	}

	_, err = testCatchUp.Execute(context.Background(), recurrence.CatchUpInput{AsOf: &asOf})
	return err
}

func (t *testContext) theSchedulerWorkerRuns() error {
	if testWorker == nil {
		return errors.New("scheduler not initialized, is the API server running?")
	}
	testWorker.RunNow(context.Background())
	return nil
}

func (t *testContext) iSendARequestTo(method, path string) error {
	path = t.replacePlaceholders(path)
	return t.executeRequest(method, path, nil)
}

func (t *testContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	path = t.replacePlaceholders(path)

	var payload []byte
	if body != nil && body.Content != "" {
		content := t.replacePlaceholders(body.Content)
		payload = []byte(content)
	}
	return t.executeRequest(method, path, payload)
}

func (t *testContext) replacePlaceholders(content string) string {
	content = strings.ReplaceAll(content, "{{access_token}}", t.accessToken)
	content = strings.ReplaceAll(content, "{{account_id}}", t.currentAccount.String())
	content = strings.ReplaceAll(content, "{{transaction_id}}", t.lastTransaction.String())
	content = strings.ReplaceAll(content, "{{recurring_id}}", t.lastRecurring.String())
	content = strings.ReplaceAll(content, "{{user_id}}", t.currentUserID.String())

	for name, id := range t.accountIDs {
		content = strings.ReplaceAll(content, "{{account:"+name+"}}", id.String())
	}

	return content
}

func (t *testContext) executeRequest(method, path string, payload []byte) error {
	var req *http.Request
	var err error

	url := t.uri + path

	if payload != nil {
		req, err = http.NewRequest(method, url, bytes.NewReader(payload))
	} else {
		req, err = http.NewRequest(method, url, nil)
	}
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")

	if t.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+t.accessToken)
	}

	for key, value := range t.headers {
		req.Header.Set(key, value)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	t.response = &response{
		status: resp.StatusCode,
	}

	var responseBody map[string]any
	if err := json.Unmarshal(bodyBytes, &responseBody); err != nil {
		t.response.body = string(bodyBytes)
	} else {
		t.response.body = responseBody

		// Capture the created resource ID from the response if present
		if idStr, ok := responseBody["id"].(string); ok {
			if id, err := uuid.Parse(idStr); err == nil {
				if _, isRecurring := responseBody["frequency"]; isRecurring {
					t.lastRecurring = id
				} else if _, isAccount := responseBody["kind"]; isAccount {
					if name, ok := responseBody["name"].(string); ok {
						t.accountIDs[name] = id
					}
					t.currentAccount = id
				} else {
					t.lastTransaction = id
				}
			}
		}
	}

	return nil
}

func (t *testContext) theResponseStatusShouldBe(expectedStatus int) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if t.response.status != expectedStatus {
		return fmt.Errorf("expected status %d, got %d (body: %v)", expectedStatus, t.response.status, t.response.body)
	}
	return nil
}

func (t *testContext) theResponseShouldBeJSON() error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if _, ok := t.response.body.(map[string]any); !ok {
		return fmt.Errorf("response is not JSON: %v", t.response.body)
	}
	return nil
}

func (t *testContext) theResponseShouldContain(field string) error {
	if t.response == nil {
		return errors.New("no response received")
	}

	body, ok := t.response.body.(map[string]any)
	if !ok {
		return fmt.Errorf("response is not a JSON object: %v", t.response.body)
	}

	if _, exists := body[field]; !exists {
		return fmt.Errorf("response does not contain field '%s': %v", field, body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBe(field, expectedValue string) error {
	if t.response == nil {
		return errors.New("no response received")
	}

	body, ok := t.response.body.(map[string]any)
	if !ok {
		return fmt.Errorf("response is not a JSON object: %v", t.response.body)
	}

	value := getFieldValue(body, field)
	if value == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
	}

	actualValue := fmt.Sprintf("%v", value)
	if actualValue != expectedValue {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expectedValue, actualValue)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldExist(field string) error {
	if t.response == nil {
		return errors.New("no response received")
	}

	body, ok := t.response.body.(map[string]any)
	if !ok {
		return fmt.Errorf("response is not a JSON object: %v", t.response.body)
	}

	value := getFieldValue(body, field)
	if value == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
	}
	return nil
}

func (t *testContext) theDbShouldContainObjectsInTheTable(quantity int, table string) error {
	if entity, ok := t.db.GetModel(table); ok {
		entityType := reflect.TypeOf(entity).Elem()
		entitySlice := reflect.MakeSlice(reflect.SliceOf(entityType), 0, 0)
		entitySlicePtr := reflect.New(entitySlice.Type())
		entitySlicePtr.Elem().Set(entitySlice)

		result := t.db.DbConn.Unscoped().Find(entitySlicePtr.Interface())
		if result.Error != nil {
			return result.Error
		}

		count := entitySlicePtr.Elem().Len()
		if count != quantity {
			return fmt.Errorf("expected %d objects in '%s', got %d", quantity, table, count)
		}
		return nil
	}
	return fmt.Errorf("table '%s' not found in models", table)
}

func (t *testContext) theDbShouldContainObjectsInWithTheValues(quantity int, table string, content *godog.DocString) error {
	var criteria map[string]any
	if err := json.Unmarshal([]byte(t.replacePlaceholders(content.Content)), &criteria); err != nil {
		return err
	}

	if entity, ok := t.db.GetModel(table); ok {
		entityType := reflect.TypeOf(entity).Elem()
		entitySlice := reflect.MakeSlice(reflect.SliceOf(entityType), 0, 0)
		entitySlicePtr := reflect.New(entitySlice.Type())
		entitySlicePtr.Elem().Set(entitySlice)

		query := t.db.DbConn.Unscoped()
		for key, value := range criteria {
			query = query.Where(fmt.Sprintf("%s = ?", key), value)
		}

		result := query.Find(entitySlicePtr.Interface())
		if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return result.Error
		}

		count := entitySlicePtr.Elem().Len()
		if count != quantity {
			return fmt.Errorf("expected %d objects in '%s' with criteria %v, got %d", quantity, table, criteria, count)
		}
		return nil
	}
	return fmt.Errorf("table '%s' not found in models", table)
}

func (t *testContext) theAccountBalanceShouldBe(accountName, expectedBalance string) error {
	accountID, ok := t.accountIDs[accountName]
	if !ok {
		return fmt.Errorf("account '%s' not found", accountName)
	}

	var accountModel model.AccountModel
	if err := t.db.DbConn.Where("id = ?", accountID).First(&accountModel).Error; err != nil {
		return fmt.Errorf("account '%s' not in database: %w", accountName, err)
	}

	expected, err := decimal.NewFromString(expectedBalance)
	if err != nil {
		return fmt.Errorf("invalid expected balance '%s': %w", expectedBalance, err)
	}

	if !accountModel.Balance.Equal(expected) {
		return fmt.Errorf("account '%s' expected balance %s, got %s", accountName, expected.StringFixed(2), accountModel.Balance.StringFixed(2))
	}
	return nil
}

func (t *testContext) theAccountAvailableCreditShouldBe(accountName, expectedCredit string) error {
	accountID, ok := t.accountIDs[accountName]
	if !ok {
		return fmt.Errorf("account '%s' not found", accountName)
	}

	var accountModel model.AccountModel
	if err := t.db.DbConn.Where("id = ?", accountID).First(&accountModel).Error; err != nil {
		return fmt.Errorf("account '%s' not in database: %w", accountName, err)
	}

	expected, err := decimal.NewFromString(expectedCredit)
	if err != nil {
		return fmt.Errorf("invalid expected credit '%s': %w", expectedCredit, err)
	}

	if !accountModel.AvailableCredit.Equal(expected) {
		return fmt.Errorf("account '%s' expected available credit %s, got %s", accountName, expected.StringFixed(2), accountModel.AvailableCredit.StringFixed(2))
	}
	return nil
}

func getFieldValue(object any, dotSeparatedField string) any {
	if object == nil {
		return nil
	}

	var objectMap map[string]any
	switch v := object.(type) {
	case map[string]any:
		objectMap = v
	default:
		objectJSON, _ := json.Marshal(object)
		if err := json.Unmarshal(objectJSON, &objectMap); err != nil {
			return nil
		}
	}

	fields := strings.Split(dotSeparatedField, ".")
	var field any = objectMap

	for _, currentField := range fields {
		if field == nil {
			return nil
		}

		if i, err := strconv.Atoi(currentField); err == nil {
			if arr, ok := field.([]any); ok && i < len(arr) {
				field = arr[i]
			} else {
				return nil
			}
		} else {
			if m, ok := field.(map[string]any); ok {
				field = m[currentField]
			} else {
				return nil
			}
		}
	}

	return field
}
