package tests

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"nclexprep/backend/config"
	"nclexprep/backend/models"
	"nclexprep/backend/routes"
	"nclexprep/backend/services"
	"nclexprep/backend/utils"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var (
	app      *fiber.App
	db       *gorm.DB
	cfg      *config.Config
	testUser models.User
	jwtToken string
)

func TestMain(m *testing.M) {
	setup()
	code := m.Run()
	os.Exit(code)
}

func setup() {
	cfg = &config.Config{
		JWTSecret:     "testsecret",
		ServerPort:    "8080",
		UseSampleData: true,
	}

	var err error
	db, err = gorm.Open(sqlite.Open("file:e2e?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		panic(err)
	}
	if err := utils.Migrate(db); err != nil {
		panic(err)
	}
	// The repository serves the bundled pool; the database still needs the
	// same questions so aggregation joins resolve.
	if err := services.SeedSampleData(db); err != nil {
		panic(err)
	}

	app = fiber.New()
	routes.SetupRoutes(app, db, cfg, nil, utils.InitLogger())

	testUser = createUser("testuser", "test@example.com", "password", "user")
	jwtToken, err = utils.GenerateJWTToken(testUser.ID, cfg)
	if err != nil {
		panic(err)
	}
}

func createUser(username, email, password, role string) models.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := db.Create(&user).Error; err != nil {
		panic(err)
	}
	return user
}

func tokenFor(t *testing.T, user models.User) string {
	t.Helper()
	token, err := utils.GenerateJWTToken(user.ID, cfg)
	if err != nil {
		t.Fatalf("could not generate token: %v", err)
	}
	return token
}

// doRequest performs an authenticated JSON request against the test app and
// decodes the response body into a generic map.
func doRequest(t *testing.T, method, target, token string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("could not marshal request body: %v", err)
		}
		reader = bytes.NewBuffer(jsonData)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	var result map[string]interface{}
	raw, _ := io.ReadAll(resp.Body)
	if len(raw) > 0 && raw[0] == '{' {
		json.Unmarshal(raw, &result)
	}
	return resp, result
}

// dataField digs the data object out of the success envelope.
func dataField(t *testing.T, result map[string]interface{}) map[string]interface{} {
	t.Helper()
	data, ok := result["data"].(map[string]interface{})
	if !ok {
		t.Fatalf("response has no data object: %v", result)
	}
	return data
}
