// Command promote assigns a role to an existing account.  Accounts always
// register as guests, so this is how the first admin is created:
//
//	go run ./cmd/promote -email ops@example.com
//
// With -password (and -first/-last) a missing account is registered first.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/iliyamo/hotel-booking/internal/config"
	"github.com/iliyamo/hotel-booking/internal/database"
	"github.com/iliyamo/hotel-booking/internal/logging"
	"github.com/iliyamo/hotel-booking/internal/model"
	"github.com/iliyamo/hotel-booking/internal/repository"
	"github.com/iliyamo/hotel-booking/internal/service"
	"github.com/iliyamo/hotel-booking/internal/utils"
)

func main() {
	email := flag.String("email", "", "account email")
	role := flag.String("role", string(model.RoleAdmin), "guest|hotel_owner|admin")
	password := flag.String("password", "", "register the account with this password if it does not exist")
	first := flag.String("first", "Admin", "first name used when registering")
	last := flag.String("last", "User", "last name used when registering")
	flag.Parse()

	if *email == "" {
		flag.Usage()
		os.Exit(2)
	}

	_ = godotenv.Load(".env")
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger, err := logging.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := database.Open(ctx, database.Settings{
		User: cfg.DBUser, Pass: cfg.DBPass, Host: cfg.DBHost, Port: cfg.DBPort, Name: cfg.DBName,
	})
	if err != nil {
		logger.Fatal("open database", zap.Error(err))
	}
	defer db.Close()

	users := service.NewUserService(repository.NewUserRepo(db), utils.NewBcryptHasher(cfg.BcryptCost), logger)

	if *password != "" {
		_, err := users.Create(ctx, model.CreateUserInput{
			Email: *email, Password: *password, FirstName: *first, LastName: *last,
		})
		if err != nil && !errors.Is(err, service.ErrConflict) {
			logger.Fatal("register account", zap.Error(err))
		}
	}

	u, err := users.Promote(ctx, *email, model.Role(*role))
	if err != nil {
		logger.Fatal("promote account", zap.String("email", *email), zap.Error(err))
	}
	fmt.Printf("%s (%s) is now %s\n", u.Email, u.ID, u.Role)
}
