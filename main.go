package main

import (
	"errors"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"server/src/api"
	"server/src/config"
	"server/src/utils"
	aws_handler "server/src/utils/aws"
	"server/src/worker"
)

func main() {
	// Local development reads overrides from a .env file; missing is fine.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig("./settings")
	if err != nil {
		log.Println(err, "Error while loading config")
		return
	}

	logger := utils.NewLogger(logrus.InfoLevel, false, "")

	if err := resolveSecrets(cfg); err != nil {
		logger.Errorf("Could not resolve secrets: %v", err)
		return
	}

	errC, err := run(cfg, logger)
	if err != nil {
		logger.Errorf("Couldn't run: %v", err)
		return
	}

	if err := <-errC; err != nil {
		logger.Errorf("Error while running: %v", err)
	}
}

// resolveSecrets loads the quote API token from AWS Secrets Manager when the
// settings point at a secret instead of an inline token.
func resolveSecrets(cfg *config.Config) error {
	secretID := cfg.ExternalClients.Quotes.TokenSecretID
	if secretID == "" {
		return nil
	}
	awsRegion := cfg.AWS.Region
	if awsRegion == "" {
		awsRegion = os.Getenv("AWS_REGION")
	}
	handler, err := aws_handler.NewAWSHandler(awsRegion)
	if err != nil {
		return err
	}
	token, err := handler.SecretManager.GetSecretValue(secretID)
	if err != nil {
		return err
	}
	cfg.ExternalClients.Quotes.Token = token
	return nil
}

func run(cfg *config.Config, logger *logrus.Logger) (<-chan error, error) {
	errC := make(chan error, 1)

	var httpServer *http.Server
	if cfg.Service.Type == config.API {
		server, err := api.NewServer(cfg, logger)
		if err != nil {
			return nil, err
		}
		httpServer = api.NewHTTPServer(server)
	} else {
		server, err := worker.NewServer(cfg, logger)
		if err != nil {
			return nil, err
		}
		httpServer = worker.NewHTTPServer(server)
	}

	go func() {
		logger.Infof("Starting %s server on port %s", cfg.Service.Type, cfg.Service.Port)

		// "ListenAndServe always returns a non-nil error. After Shutdown or Close, the returned error is
		// ErrServerClosed."
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errC <- err
		}
	}()
	return errC, nil
}
