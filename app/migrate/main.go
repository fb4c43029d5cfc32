package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"time"

	"hrm-system/migrations"
	"hrm-system/pkg/config"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

const migrationsDir = "."

func main() {
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		return
	}
	command := args[0]

	cfg := config.New()

	db, err := sql.Open("pgx", cfg.Postgres.DSN)
	if err != nil {
		log.Fatalf("Ошибка подключения к базе данных: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		log.Fatalf("Ошибка проверки подключения к БД: %v", err)
	}
	log.Println("Успешное подключение к базе данных")

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatalf("Ошибка выбора диалекта: %v", err)
	}

	switch command {
	case "up":
		if err := goose.Up(db, migrationsDir); err != nil {
			log.Fatalf("Ошибка применения миграций: %v", err)
		}
		fmt.Println("Миграции успешно применены")
	case "down":
		if err := goose.Down(db, migrationsDir); err != nil {
			log.Fatalf("Ошибка отката миграций: %v", err)
		}
		fmt.Println("Миграция успешно откачена")
	case "status":
		if err := goose.Status(db, migrationsDir); err != nil {
			log.Fatalf("Ошибка получения статуса миграций: %v", err)
		}
	default:
		fmt.Printf("Неизвестная команда: %s\n", command)
		flag.Usage()
	}
}

func usage() {
	fmt.Println("Использование: migrate [команда]")
	fmt.Println("Доступные команды:")
	fmt.Println("  up     - Применить все непримененные миграции")
	fmt.Println("  down   - Откатить последнюю миграцию")
	fmt.Println("  status - Показать статус миграций")
}
