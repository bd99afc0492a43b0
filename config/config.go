package config

import (
	"fmt"
	"net/http"
	"os"

	"go.uber.org/zap"
)

// Config holds the project config values
type Config struct {
	Port          string
	BaseURL       string
	Environment   string
	URL           string
	DatabaseName  string
	CMSBaseURL    string
	CMSToken      string
	ChatSocketURL string
	JWTSecret     string
}

// New sets up all config related services
func New() *Config {

	//setup zap logger and replace default logger
	logger, err := setLogger(os.Getenv("ENVIRONMENT"))
	if err != nil {
		logger = zap.NewExample()
	}
	defer logger.Sync()
	_ = zap.ReplaceGlobals(logger)

	return &Config{
		Port:          os.Getenv("PORT"),
		BaseURL:       os.Getenv("BASE_URL"),
		Environment:   os.Getenv("ENVIRONMENT"),
		URL:           os.Getenv("DB_URI"),
		DatabaseName:  os.Getenv("DB_NAME"),
		CMSBaseURL:    os.Getenv("CMS_API_URL"),
		CMSToken:      os.Getenv("CMS_API_TOKEN"),
		ChatSocketURL: os.Getenv("CHAT_SOCKET_URL"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
	}

}

// ErrorStatus is a useful function that will log, write http headers and body for a
// give message, status code and err
func ErrorStatus(message string, httpStatusCode int, w http.ResponseWriter, err error) {
	zap.S().With(err).Error(message)
	w.WriteHeader(httpStatusCode)
	w.Write([]byte(fmt.Sprintf(`{"response": "%s, %v"}`, message, err)))
	return
}
