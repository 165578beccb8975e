// create_user da de alta un funcionario de la confeitaria con su perfil de acceso.
//
// Uso:
//
//	go run ./cmd/create_user --name "Teste" --email teste@teste.com --password 12345678 \
//	    --role SUPERVISOR_SENIOR [--phone 11999999999]
//
// Lee la conexión a PostgreSQL de las mismas variables que la API (DATABASE_URL / DB_*).
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/pflag"

	"github.com/jhoicas/confeitaria-api/internal/application/auth"
	"github.com/jhoicas/confeitaria-api/internal/domain"
	"github.com/jhoicas/confeitaria-api/internal/domain/authz"
	"github.com/jhoicas/confeitaria-api/internal/domain/entity"
	"github.com/jhoicas/confeitaria-api/internal/infrastructure/postgres"
	"github.com/jhoicas/confeitaria-api/pkg/config"
)

func main() {
	var (
		name     = pflag.String("name", "", "nombre del funcionario")
		email    = pflag.String("email", "", "email de acceso")
		password = pflag.String("password", "", "password (mínimo 8 caracteres)")
		role     = pflag.String("role", string(authz.RoleAtendente), "perfil: SUPERVISOR_SENIOR, SUPERVISOR_JUNIOR, CONFEITEIRO, ATENDENTE")
		phone    = pflag.String("phone", "", "teléfono (opcional)")
	)
	pflag.Parse()

	if err := run(*name, *email, *password, *role, *phone); err != nil {
		fmt.Fprintf(os.Stderr, "create_user: %v\n", err)
		os.Exit(1)
	}
}

func run(name, email, password, role, phone string) error {
	r := authz.Role(strings.ToUpper(strings.TrimSpace(role)))
	if !r.Valid() {
		return fmt.Errorf("perfil desconocido %q", role)
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if strings.TrimSpace(name) == "" || email == "" {
		return errors.New("--name y --email son obligatorios")
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return err
	}
	defer pool.Close()

	now := time.Now().UTC()
	u := &entity.User{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: hash,
		Phone:        phone,
		Role:         r,
		Status:       entity.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := postgres.NewUserRepository(pool).Create(ctx, u); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return fmt.Errorf("ya existe un usuario con email %s", email)
		}
		return err
	}
	fmt.Printf("usuario creado: %s (%s, %s)\n", u.ID, u.Email, u.Role)
	return nil
}
