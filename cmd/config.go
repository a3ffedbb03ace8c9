package cmd

import (
	"fmt"
	"net/url"
	"time"
)

type Config struct {
	HTTPPort    string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBAdminName string
	DBSslMode   string

	StorageBasePath string

	RejectedOrderSchedule    string
	RejectedOrderGracePeriod time.Duration
}

// DSN returns the connection string of the service database.
func (c Config) DSN() string {
	return c.dsn(c.DBName)
}

// AdminDSN points at DBAdminName on the same server; used to create DBName.
func (c Config) AdminDSN() string {
	return c.dsn(c.DBAdminName)
}

func (c Config) dsn(dbName string) string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.DBUser, c.DBPassword),
		Host:   fmt.Sprintf("%s:%s", c.DBHost, c.DBPort),
		Path:   dbName,
	}
	q := url.Values{}
	q.Set("sslmode", c.DBSslMode)
	u.RawQuery = q.Encode()
	return u.String()
}
