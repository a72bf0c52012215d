package main

// Batch-process stored documents through the extraction pipeline:
//   go run ./cmd/kycbatch -user alice
//   go run ./cmd/kycbatch           # every user with stored documents

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"

	"kyc-backend/internal/documents"
	"kyc-backend/internal/extract"
	"kyc-backend/internal/kyc"
	"kyc-backend/internal/ocr"
	"kyc-backend/internal/shared/config"
	"kyc-backend/internal/shared/storage/db"
	"kyc-backend/internal/shared/storage/object"
	localstore "kyc-backend/internal/shared/storage/object/local"
	s3store "kyc-backend/internal/shared/storage/object/s3"
)

func main() {
	user := flag.String("user", "", "process only this user's documents")
	flag.Parse()

	cfg := config.Load()
	ctx := context.Background()

	if cfg.DatabaseURL == "" {
		log.Printf("DATABASE_URL is required for batch processing")
		os.Exit(1)
	}

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
	if err != nil {
		log.Printf("failed to connect database: %v", err)
		os.Exit(1)
	}
	defer sqlDB.Close()

	svc := newService(cfg, sqlDB)

	usernames := []string{*user}
	if *user == "" {
		usernames, err = listDocumentOwners(ctx, svc.Docs)
		if err != nil {
			log.Printf("failed to list document owners: %v", err)
			os.Exit(1)
		}
	}

	exitCode := 0
	for _, username := range usernames {
		results, err := svc.ProcessUser(ctx, username)
		if err != nil {
			log.Printf("%s: batch failed: %v", username, err)
			exitCode = 1
			continue
		}
		for _, res := range results {
			line := fmt.Sprintf("%s\t%s\t%s", username, res.FileName, res.Status)
			if res.Message != "" {
				line += "\t" + res.Message
			}
			fmt.Println(line)
			if res.Status == kyc.StatusFailed {
				exitCode = 1
			}
		}
	}
	os.Exit(exitCode)
}

func newService(cfg config.Config, sqlDB *sql.DB) *kyc.Service {
	docSvc := &documents.Service{
		Store: newObjectStore(cfg),
		Repo:  &documents.PGRepo{DB: sqlDB},
	}
	extractor := extract.New(ocr.NewEngine(ocr.Config{
		Tesseract: cfg.OCRTesseract,
		Pdftoppm:  cfg.OCRPdftoppm,
		Language:  cfg.OCRLanguage,
		DPI:       cfg.OCRDPI,
	}))
	return &kyc.Service{
		Docs:      docSvc,
		Extractor: extractor,
		Repo:      &kyc.PGRepo{DB: sqlDB},
	}
}

func newObjectStore(cfg config.Config) object.ObjectStore {
	if cfg.ObjectStoreType == "s3" {
		store, err := s3store.New(context.Background(), cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
		if err != nil {
			log.Printf("failed to init s3 store: %v", err)
			os.Exit(1)
		}
		return store
	}
	return localstore.New(cfg.LocalStoreDir)
}

func listDocumentOwners(ctx context.Context, docSvc *documents.Service) ([]string, error) {
	docs, err := docSvc.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	var out []string
	for _, doc := range docs {
		if _, ok := seen[doc.Username]; ok {
			continue
		}
		seen[doc.Username] = struct{}{}
		out = append(out, doc.Username)
	}
	return out, nil
}
