package mysql

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Config holds connection settings for the inventory database, sourced from
// environment variables under the DB_ prefix.
type Config struct {
	Host     string `split_words:"true" default:"127.0.0.1"`
	Port     int    `split_words:"true" default:"3306"`
	User     string `split_words:"true" default:"root"`
	Password string `split_words:"true"`
	Database string `split_words:"true" required:"true"`
}

// DSN builds the MySQL DSN. parseTime is required so datetime columns scan
// into time.Time.
func (c *Config) DSN() string {
	cred := c.User
	if c.Password != "" {
		cred += ":" + c.Password
	}
	return fmt.Sprintf("%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4", cred, c.Host, c.Port, c.Database)
}

// New opens a GORM connection. GORM's own query logging is silenced; the
// application logs through logx instead.
func (c *Config) New() (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(c.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("mysql: connect to %s:%d/%s: %w", c.Host, c.Port, c.Database, err)
	}
	return db, nil
}

func (c *Config) MustNew() *gorm.DB {
	db, err := c.New()
	if err != nil {
		panic(err)
	}

	return db
}
