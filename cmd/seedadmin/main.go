package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"

	"github.com/dmitrijs2005/coursehub/internal/seedadmin"
	"github.com/dmitrijs2005/coursehub/internal/server/auth"
	"github.com/dmitrijs2005/coursehub/internal/server/config"
	"github.com/dmitrijs2005/coursehub/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/coursehub/internal/server/services"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()

	db, err := repomanager.OpenDB(ctx, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}
	defer db.Close()

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		log.Fatalf("migrations error: %v", err)
	}

	tokens, err := auth.NewTokenService([]byte(cfg.UserSecretKey), []byte(cfg.AdminSecretKey), cfg.AccessTokenValidityDuration)
	if err != nil {
		log.Fatalf("token service init error: %v", err)
	}

	hasher, err := auth.NewHasher(cfg.HashCost)
	if err != nil {
		log.Fatalf("hasher init error: %v", err)
	}

	admins := services.NewPrincipalService(db, rm, auth.ClassAdmin, hasher, tokens)

	prompter := seedadmin.Prompter{
		In:       bufio.NewReader(os.Stdin),
		Out:      os.Stdout,
		Terminal: int(os.Stdin.Fd()),
	}

	admin, err := seedadmin.Run(ctx, prompter, admins)
	if err != nil {
		log.Fatalf("%v", err)
	}

	fmt.Printf("Admin %s created (id=%s)\n", admin.Email, admin.ID)

}
