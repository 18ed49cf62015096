// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/budgetloom/backend/internal/application/usecase/auth"
	"github.com/budgetloom/backend/internal/application/usecase/category"
	"github.com/budgetloom/backend/internal/application/usecase/member"
	"github.com/budgetloom/backend/internal/application/usecase/rule"
	"github.com/budgetloom/backend/internal/application/usecase/transaction"
	"github.com/budgetloom/backend/internal/infra/server/router"
	"github.com/budgetloom/backend/internal/integration/adapters"
	"github.com/budgetloom/backend/internal/integration/entrypoint/controller"
	"github.com/budgetloom/backend/internal/integration/entrypoint/middleware"
	"github.com/budgetloom/backend/internal/integration/persistence"
	"github.com/budgetloom/backend/internal/integration/persistence/model"
	"github.com/budgetloom/backend/test/integration/mock"
)

const testJWTSecret = "test-jwt-secret-key-for-testing-purposes"

var tags string

func init() {
	flag.StringVar(&tags, "scenarios", "", "tags to run")
}

func TestFeatures(t *testing.T) {
	flag.Parse()

	suite := godog.TestSuite{
		ScenarioInitializer: func(s *godog.ScenarioContext) {
			InitializeScenario(s)
		},
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"../features"},
			Tags:     tags,
			Strict:   true,
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}

type testContext struct {
	uri               string
	headers           map[string]string
	client            *http.Client
	response          *response
	db                *mock.Db
	serverPort        int
	accessToken       string
	refreshToken      string
	currentUserID     uuid.UUID
	currentCategoryID uuid.UUID
	currentMemberID   uuid.UUID
	currentRuleID     uuid.UUID
	ruleIDs           []uuid.UUID
	lastTransactionID uuid.UUID
}

type response struct {
	status int
	body   any
}

var serverInit sync.Once
var testDB *mock.Db
var testServerPort int
var portInit sync.Once

func initializePort() {
	portInit.Do(func() {
		testServerPort = findAvailablePort()
		_ = os.Setenv("SERVER_PORT", strconv.Itoa(testServerPort))
		_ = os.Setenv("ENV", "test")
	})
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	initializePort()

	test := &testContext{
		uri:        fmt.Sprintf("http://localhost:%d", testServerPort),
		client:     &http.Client{Timeout: 10 * time.Second},
		serverPort: testServerPort,
		db: mock.NewDb(map[string]any{
			"users":          &model.UserModel{},
			"refresh_tokens": &model.RefreshTokenModel{},
			"categories":     &model.CategoryModel{},
			"members":        &model.MemberModel{},
			"transactions":   &model.TransactionModel{},
			"rules":          &model.RuleModel{},
		}),
	}

	testDB = test.db

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		test.before()
		return ctx, nil
	})

	// Background steps
	ctx.Given(`^the API server is running$`, test.theAPIServerIsRunning)

	// User setup steps
	ctx.Given(`^a user exists with email "([^"]*)"$`, test.aUserExistsWithEmail)
	ctx.Given(`^a user exists with email "([^"]*)" and password "([^"]*)"$`, test.aUserExistsWithEmailAndPassword)
	ctx.Given(`^the user is logged in with valid tokens$`, test.theUserIsLoggedInWithValidTokens)

	// Data setup steps
	ctx.Given(`^a category exists with name "([^"]*)" and type "([^"]*)"$`, test.aCategoryExistsWithNameAndType)
	ctx.Given(`^a household member exists with name "([^"]*)"$`, test.aHouseholdMemberExistsWithName)
	ctx.Given(`^a transaction exists with description "([^"]*)" and amount "([^"]*)"$`, test.aTransactionExistsWithDescriptionAndAmount)
	ctx.Given(`^a verified transaction exists with description "([^"]*)" and amount "([^"]*)"$`, test.aVerifiedTransactionExistsWithDescriptionAndAmount)
	ctx.Given(`^a rule exists with keyword "([^"]*)" targeting "([^"]*)"$`, test.aRuleExistsWithKeywordTargeting)
	ctx.Given(`^a rule exists with keyword "([^"]*)" targeting "([^"]*)" and priority (\d+)$`, test.aRuleExistsWithKeywordTargetingAndPriority)

	// Header steps
	ctx.Given(`^the header is empty$`, test.theHeaderIsEmpty)

	// Request steps
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response should be JSON$`, test.theResponseShouldBeJSON)
	ctx.Then(`^the response should contain "([^"]*)"$`, test.theResponseShouldContain)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)

	// Database assertion steps
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, test.theDbShouldContainObjectsInTheTable)
	ctx.Then(`^the db should contain (\d+) objects in "([^"]*)" with the values$`, test.theDbShouldContainObjectsInWithTheValues)
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
	t.refreshToken = ""
	t.currentUserID = uuid.Nil
	t.currentCategoryID = uuid.Nil
	t.currentMemberID = uuid.Nil
	t.currentRuleID = uuid.Nil
	t.ruleIDs = nil
	t.lastTransactionID = uuid.Nil

	if t.db != nil {
		_ = t.db.ClearDB()
	}
	_ = mock.ClearRedis(mock.NewRedis())
}

func (t *testContext) startServer() {
	serverInit.Do(func() {
		go func() {
			gin.SetMode(gin.TestMode)

			redisClient := mock.NewRedis()

			// Repositories
			userRepo := persistence.NewUserRepository(testDB.DbConn)
			tokenRepo := persistence.NewTokenRepository(testDB.DbConn)
			categoryRepo := persistence.NewCategoryRepository(testDB.DbConn)
			memberRepo := persistence.NewMemberRepository(testDB.DbConn)
			transactionRepo := persistence.NewTransactionRepository(testDB.DbConn)
			ruleRepo := persistence.NewRuleRepository(testDB.DbConn)

			// Adapters/services
			passwordService := adapters.NewPasswordService()
			tokenService := adapters.NewTokenService(testJWTSecret, 15*time.Minute, 7*24*time.Hour, tokenRepo)
			runLock := adapters.NewRedisRunLock(redisClient, time.Minute)
			eventPublisher := adapters.NewRedisEventPublisher(redisClient)

			// Auth use cases
			registerUseCase := auth.NewRegisterUserUseCase(userRepo, passwordService, tokenService)
			loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)
			refreshTokenUseCase := auth.NewRefreshTokenUseCase(tokenService)
			logoutUseCase := auth.NewLogoutUserUseCase(tokenService)

			// Category use cases
			listCategoriesUseCase := category.NewListCategoriesUseCase(categoryRepo)
			createCategoryUseCase := category.NewCreateCategoryUseCase(categoryRepo)
			updateCategoryUseCase := category.NewUpdateCategoryUseCase(categoryRepo)
			deleteCategoryUseCase := category.NewDeleteCategoryUseCase(categoryRepo)

			// Member use cases
			listMembersUseCase := member.NewListMembersUseCase(memberRepo)
			createMemberUseCase := member.NewCreateMemberUseCase(memberRepo)
			deleteMemberUseCase := member.NewDeleteMemberUseCase(memberRepo)

			// Transaction use cases
			listTransactionsUseCase := transaction.NewListTransactionsUseCase(transactionRepo)
			createTransactionUseCase := transaction.NewCreateTransactionUseCase(transactionRepo, categoryRepo, memberRepo, eventPublisher)
			updateTransactionUseCase := transaction.NewUpdateTransactionUseCase(transactionRepo, categoryRepo, memberRepo, eventPublisher)
			deleteTransactionUseCase := transaction.NewDeleteTransactionUseCase(transactionRepo, eventPublisher)

			// Rule use cases
			listRulesUseCase := rule.NewListRulesUseCase(ruleRepo)
			createRuleUseCase := rule.NewCreateRuleUseCase(ruleRepo, categoryRepo, memberRepo, eventPublisher, 10)
			updateRuleUseCase := rule.NewUpdateRuleUseCase(ruleRepo, categoryRepo, memberRepo, eventPublisher)
			deleteRuleUseCase := rule.NewDeleteRuleUseCase(ruleRepo, eventPublisher)
			bulkDeleteRulesUseCase := rule.NewBulkDeleteRulesUseCase(ruleRepo, eventPublisher)
			reorderRulesUseCase := rule.NewReorderRulesUseCase(ruleRepo, eventPublisher)
			previewRuleUseCase := rule.NewPreviewRuleUseCase(transactionRepo, 10)
			runRulesUseCase := rule.NewRunRulesUseCase(ruleRepo, transactionRepo, runLock, eventPublisher)

			// Controllers
			healthController := controller.NewHealthController(
				func() bool { return testDB != nil && testDB.DbConn != nil },
				func() bool { return redisClient.Ping(context.Background()).Err() == nil },
			)

			authController := controller.NewAuthController(
				registerUseCase,
				loginUseCase,
				refreshTokenUseCase,
				logoutUseCase,
			)

			categoryController := controller.NewCategoryController(
				listCategoriesUseCase,
				createCategoryUseCase,
				updateCategoryUseCase,
				deleteCategoryUseCase,
			)

			memberController := controller.NewMemberController(
				listMembersUseCase,
				createMemberUseCase,
				deleteMemberUseCase,
			)

			transactionController := controller.NewTransactionController(
				listTransactionsUseCase,
				createTransactionUseCase,
				updateTransactionUseCase,
				deleteTransactionUseCase,
			)

			ruleController := controller.NewRuleController(
				listRulesUseCase,
				createRuleUseCase,
				updateRuleUseCase,
				deleteRuleUseCase,
				bulkDeleteRulesUseCase,
				reorderRulesUseCase,
				previewRuleUseCase,
				runRulesUseCase,
			)

			// Middleware
			loginRateLimiter := middleware.NewRateLimiterWithConfig(1000, time.Minute)
			authMiddleware := middleware.NewAuthMiddleware(tokenService)

			r := router.NewRouter(
				healthController,
				authController,
				categoryController,
				transactionController,
				memberController,
				ruleController,
				loginRateLimiter,
				authMiddleware,
			)
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

func (t *testContext) aUserExistsWithEmail(email string) error {
	return t.createUser(email, "DefaultPass123!", "Test User")
}

func (t *testContext) aUserExistsWithEmailAndPassword(email, password string) error {
	return t.createUser(email, password, "Test User")
}

func (t *testContext) createUser(email, password, name string) error {
	userID := uuid.New()
	t.currentUserID = userID

	now := time.Now().UTC()
	user := &model.UserModel{
		ID:           userID,
		Email:        email,
		Name:         name,
		PasswordHash: hashPassword(password),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	return t.db.DbConn.Create(user).Error
}

func hashPassword(password string) string {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		panic(fmt.Sprintf("failed to hash password: %v", err))
	}
	return string(hashedBytes)
}

// hashRefreshToken mirrors how the token service keys stored refresh
// tokens, so seeded tokens line up with what the API expects.
func hashRefreshToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func (t *testContext) theUserIsLoggedInWithValidTokens() error {
	now := time.Now().UTC()

	accessToken, err := t.signToken("access", now, 15*time.Minute)
	if err != nil {
		return fmt.Errorf("failed to generate access token: %w", err)
	}
	t.accessToken = accessToken

	refreshToken, err := t.signToken("refresh", now, 7*24*time.Hour)
	if err != nil {
		return fmt.Errorf("failed to generate refresh token: %w", err)
	}
	t.refreshToken = refreshToken

	refreshTokenModel := &model.RefreshTokenModel{
		TokenHash:   hashRefreshToken(refreshToken),
		UserID:      t.currentUserID,
		Invalidated: false,
		ExpiresAt:   now.Add(7 * 24 * time.Hour),
		CreatedAt:   now,
	}

	return t.db.DbConn.Create(refreshTokenModel).Error
}

func (t *testContext) signToken(tokenType string, now time.Time, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id":    t.currentUserID.String(),
		"email":      "test@example.com",
		"token_type": tokenType,
		"exp":        jwt.NewNumericDate(now.Add(duration)),
		"iat":        jwt.NewNumericDate(now),
		"sub":        t.currentUserID.String(),
		"jti":        uuid.NewString(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(testJWTSecret))
}

func (t *testContext) aCategoryExistsWithNameAndType(name, categoryType string) error {
	categoryID := uuid.New()
	t.currentCategoryID = categoryID

	now := time.Now().UTC()
	categoryModel := &model.CategoryModel{
		ID:        categoryID,
		UserID:    t.currentUserID,
		Name:      name,
		Type:      categoryType,
		Icon:      "tag",
		Color:     "#6366F1",
		CreatedAt: now,
		UpdatedAt: now,
	}

	return t.db.DbConn.Create(categoryModel).Error
}

func (t *testContext) aHouseholdMemberExistsWithName(name string) error {
	memberID := uuid.New()
	t.currentMemberID = memberID

	memberModel := &model.MemberModel{
		ID:        memberID,
		UserID:    t.currentUserID,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}

	return t.db.DbConn.Create(memberModel).Error
}

func (t *testContext) aTransactionExistsWithDescriptionAndAmount(description, amount string) error {
	return t.createTransaction(description, amount, false)
}

func (t *testContext) aVerifiedTransactionExistsWithDescriptionAndAmount(description, amount string) error {
	return t.createTransaction(description, amount, true)
}

func (t *testContext) createTransaction(description, amount string, verified bool) error {
	value, err := decimal.NewFromString(amount)
	if err != nil {
		return fmt.Errorf("invalid amount '%s': %w", amount, err)
	}

	transactionID := uuid.New()
	t.lastTransactionID = transactionID

	now := time.Now().UTC()
	transactionModel := &model.TransactionModel{
		ID:          transactionID,
		UserID:      t.currentUserID,
		Date:        now,
		Description: description,
		Amount:      value,
		Verified:    verified,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if verified {
		// A verified transaction in the fixtures is one a human already
		// categorized.
		transactionModel.CategoryID = &t.currentCategoryID
	}

	return t.db.DbConn.Create(transactionModel).Error
}

func (t *testContext) aRuleExistsWithKeywordTargeting(keyword, categoryName string) error {
	return t.createRule(keyword, categoryName, 0)
}

func (t *testContext) aRuleExistsWithKeywordTargetingAndPriority(keyword, categoryName string, priority int) error {
	return t.createRule(keyword, categoryName, priority)
}

func (t *testContext) createRule(keyword, categoryName string, priority int) error {
	var categoryModel model.CategoryModel
	if err := t.db.DbConn.
		Where("name = ? AND user_id = ?", categoryName, t.currentUserID).
		First(&categoryModel).Error; err != nil {
		return fmt.Errorf("category '%s' not found: %w", categoryName, err)
	}

	ruleID := uuid.New()
	t.currentRuleID = ruleID

	now := time.Now().UTC()
	ruleModel := &model.RuleModel{
		ID:         ruleID,
		UserID:     t.currentUserID,
		Keywords:   []string{strings.ToLower(keyword)},
		CategoryID: categoryModel.ID,
		Priority:   priority,
		Position:   len(t.ruleIDs),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := t.db.DbConn.Create(ruleModel).Error; err != nil {
		return err
	}
	t.ruleIDs = append(t.ruleIDs, ruleID)
	return nil
}

func (t *testContext) theHeaderIsEmpty() error {
	t.headers = make(map[string]string)
	t.accessToken = ""
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
		payload = []byte(t.replacePlaceholders(body.Content))
	}
	return t.executeRequest(method, path, payload)
}

func (t *testContext) replacePlaceholders(content string) string {
	content = strings.ReplaceAll(content, "{{refresh_token}}", t.refreshToken)
	content = strings.ReplaceAll(content, "{{access_token}}", t.accessToken)
	content = strings.ReplaceAll(content, "{{category_id}}", t.currentCategoryID.String())
	content = strings.ReplaceAll(content, "{{member_id}}", t.currentMemberID.String())
	content = strings.ReplaceAll(content, "{{rule_id}}", t.currentRuleID.String())
	content = strings.ReplaceAll(content, "{{transaction_id}}", t.lastTransactionID.String())

	if len(t.ruleIDs) > 0 {
		content = strings.ReplaceAll(content, "{{rule_ids}}", formatIDList(t.ruleIDs))

		reversed := make([]uuid.UUID, len(t.ruleIDs))
		for i, id := range t.ruleIDs {
			reversed[len(t.ruleIDs)-1-i] = id
		}
		content = strings.ReplaceAll(content, "{{rule_ids_reversed}}", formatIDList(reversed))
	}

	return content
}

func formatIDList(ids []uuid.UUID) string {
	quoted := make([]string, len(ids))
	for i, id := range ids {
		quoted[i] = fmt.Sprintf(`"%s"`, id.String())
	}
	return "[" + strings.Join(quoted, ", ") + "]"
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
		return nil
	}
	t.response.body = responseBody

	// Capture created IDs so later steps can reference them
	if idStr, ok := responseBody["id"].(string); ok {
		if id, err := uuid.Parse(idStr); err == nil {
			switch {
			case hasKey(responseBody, "keywords"):
				t.currentRuleID = id
				t.ruleIDs = append(t.ruleIDs, id)
			case hasKey(responseBody, "amount"):
				t.lastTransactionID = id
			case hasKey(responseBody, "type"):
				t.currentCategoryID = id
			default:
				t.currentMemberID = id
			}
		}
	}

	return nil
}

func hasKey(m map[string]any, key string) bool {
	_, ok := m[key]
	return ok
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

	if getFieldValue(body, field) == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
	}
	return nil
}

func (t *testContext) theDbShouldContainObjectsInTheTable(quantity int, table string) error {
	entity, ok := t.db.GetModel(table)
	if !ok {
		return fmt.Errorf("table '%s' not found in models", table)
	}

	entityType := reflect.TypeOf(entity).Elem()
	entitySlicePtr := reflect.New(reflect.SliceOf(entityType))

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

func (t *testContext) theDbShouldContainObjectsInWithTheValues(quantity int, table string, content *godog.DocString) error {
	var criteria map[string]any
	if err := json.Unmarshal([]byte(t.replacePlaceholders(content.Content)), &criteria); err != nil {
		return err
	}

	entity, ok := t.db.GetModel(table)
	if !ok {
		return fmt.Errorf("table '%s' not found in models", table)
	}

	entityType := reflect.TypeOf(entity).Elem()
	entitySlicePtr := reflect.New(reflect.SliceOf(entityType))

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
