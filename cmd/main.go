package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	firebase "firebase.google.com/go"
	"firebase.google.com/go/messaging"
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	"google.golang.org/api/option"

	"pieceJobBack/internal/config"
	"pieceJobBack/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	configPath := flag.String("config", envOr("CONFIG_PATH", "config.yaml"), "path to the YAML config file")
	addr := flag.String("addr", "", "HTTP network address (overrides config)")
	issueFor := flag.String("issue-token", "", "print a signed access token for this user ID and exit")
	flag.Parse()

	infoLog := log.New(os.Stdout, "INFO\t", log.Ldate|log.Ltime)
	errorLog := log.New(os.Stderr, "ERROR\t", log.Ldate|log.Ltime|log.Lshortfile)

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		errorLog.Fatal(err)
	}
	if *addr != "" {
		cfg.Server.Address = *addr
	}

	if *issueFor != "" {
		manager, err := utils.NewManager(cfg.Auth.JWTSecret)
		if err != nil {
			errorLog.Fatal(err)
		}
		token, err := manager.NewJWT(*issueFor, cfg.TokenTTL())
		if err != nil {
			errorLog.Fatal(err)
		}
		fmt.Println(token)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var db *sql.DB
	if cfg.Database.URL != "" {
		db, err = openDB(cfg.Database.Driver, cfg.Database.URL)
		if err != nil {
			errorLog.Fatal(err)
		}
		defer db.Close()
	}

	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err := rdb.Ping(ctx).Err(); err != nil {
			errorLog.Printf("redis ping failed, live provider index disabled: %v", err)
			rdb.Close()
			rdb = nil
		} else {
			defer rdb.Close()
		}
	}

	var fcm *messaging.Client
	if cfg.Firebase.CredentialsFile != "" {
		fcm, err = newMessagingClient(ctx, cfg.Firebase.CredentialsFile)
		if err != nil {
			errorLog.Printf("firebase init failed, push notifications disabled: %v", err)
			fcm = nil
		}
	}

	var uploader *utils.Uploader
	if cfg.S3.Bucket != "" {
		uploader, err = utils.NewUploader(utils.S3Config{
			Endpoint:  cfg.S3.Endpoint,
			Region:    cfg.S3.Region,
			Bucket:    cfg.S3.Bucket,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
			PublicURL: cfg.S3.PublicURL,
		})
		if err != nil {
			errorLog.Printf("s3 init failed, job image uploads disabled: %v", err)
			uploader = nil
		}
	}

	app, err := initializeApp(ctx, cfg, deps{db: db, rdb: rdb, fcm: fcm, uploader: uploader}, errorLog, infoLog)
	if err != nil {
		errorLog.Fatal(err)
	}
	defer app.close()

	app.startWorkers(ctx)

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", "http://localhost:5173", "http://localhost:8081", "http://localhost:19006"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowCredentials: true,
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-User-ID"},
	})

	srv := &http.Server{
		Addr:         cfg.Server.Address,
		ErrorLog:     errorLog,
		Handler:      c.Handler(app.routes()),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			errorLog.Printf("shutdown: %v", err)
		}
	}()

	infoLog.Printf("Starting server on %s", cfg.Server.Address)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		errorLog.Fatal(err)
	}
	infoLog.Printf("Server stopped")
}

func openDB(driver, dsn string) (*sql.DB, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)
	log.Println("Successfully connected to database")
	return db, nil
}

func newMessagingClient(ctx context.Context, credentialsFile string) (*messaging.Client, error) {
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("firebase app: %w", err)
	}
	return app.Messaging(ctx)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
