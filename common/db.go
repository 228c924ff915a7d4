package common

import (
  "fmt"
  "sync"

  "gorm.io/driver/mysql"
  "gorm.io/driver/postgres"
  "gorm.io/gorm"
  "gorm.io/gorm/logger"
)

type ApiContext struct {
  Db  *gorm.DB
  Mux sync.Mutex
}

// NewSession opens a dedicated store connection. A session owns exactly one
// underlying connection, so statements issued through it never interleave.
// Callers that want parallel load open one session per worker.
func NewSession() (*gorm.DB, error) {
  db, err := gorm.Open(newDialector(), &gorm.Config{
    Logger: logger.Default.LogMode(logger.Silent),
  })
  if err != nil {
    return nil, fmt.Errorf("store connect: %w", err)
  }
  pool, err := db.DB()
  if err != nil {
    return nil, fmt.Errorf("store connect: %w", err)
  }
  pool.SetMaxOpenConns(1)
  pool.SetMaxIdleConns(1)
  if err := pool.Ping(); err != nil {
    pool.Close()
    return nil, fmt.Errorf("store unreachable: %w", err)
  }
  return db, nil
}

func CloseSession(db *gorm.DB) error {
  if db == nil {
    return nil
  }
  pool, err := db.DB()
  if err != nil {
    return err
  }
  return pool.Close()
}

func newDialector() gorm.Dialector {
  host := GetEnvString("DB_HOST")
  port := GetEnvInt("DB_PORT")
  user := GetEnvString("DB_USER")
  password := GetEnvString("DB_PASSWORD")
  name := GetEnvString("DB_NAME")

  switch GetEnvString("DB_DRIVER") {
  case "postgres":
    if port == 0 {
      port = 5432
    }
    dsn := fmt.Sprintf(
      "host=%s user=%s password=%s dbname=%s port=%d sslmode=disable",
      host,
      user,
      password,
      name,
      port,
    )
    return postgres.Open(dsn)
  default:
    if port == 0 {
      port = 3306
    }
    dsn := fmt.Sprintf(
      "%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True",
      user,
      password,
      host,
      port,
      name,
    )
    return mysql.Open(dsn)
  }
}
