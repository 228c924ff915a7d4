package common

import (
  "os"
  "strconv"
)

func GetEnvString(key string) string {
  return os.Getenv(key)
}

func GetEnvInt(key string) int {
  val, _ := strconv.Atoi(os.Getenv(key))
  return val
}

func GetEnvBool(key string) bool {
  val, _ := strconv.ParseBool(os.Getenv(key))
  return val
}
