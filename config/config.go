package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all pipeline configuration loaded from environment variables.
type Config struct {
	InputDir         string
	OutputDir        string
	CrowdfundingFile string
	ContactsFile     string

	ContactsHeaderRow int
	ContactParser     string
	Timezone          string

	SQLDir     string
	SchemaFile string
	ImportFile string
	TableOrder []string

	Debug bool
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		InputDir:         getEnv("INPUT_DIR", "./Resources/Input"),
		OutputDir:        getEnv("OUTPUT_DIR", "./Resources/Output"),
		CrowdfundingFile: getEnv("CROWDFUNDING_FILE", "crowdfunding.xlsx"),
		ContactsFile:     getEnv("CONTACTS_FILE", "contacts.xlsx"),

		ContactsHeaderRow: getEnvInt("CONTACTS_HEADER_ROW", 3),
		ContactParser:     strings.ToLower(getEnv("CONTACT_PARSER", "json")),
		Timezone:          getEnv("ETL_TIMEZONE", "Local"),

		SQLDir:     getEnv("SQL_DIR", "./Resources/SQL"),
		SchemaFile: getEnv("SCHEMA_FILE", "crowdfunding_db_schema.sql"),
		ImportFile: getEnv("IMPORT_FILE", "crowdfunding_db_import.sql"),
		TableOrder: getEnvList("TABLE_ORDER", []string{"contacts", "category", "subcategory", "campaign"}),

		Debug: getEnvBool("ETL_DEBUG", false),
	}
}

// CrowdfundingPath returns the full path of the fact source.
func (c *Config) CrowdfundingPath() string {
	return filepath.Join(c.InputDir, c.CrowdfundingFile)
}

// ContactsPath returns the full path of the contact source.
func (c *Config) ContactsPath() string {
	return filepath.Join(c.InputDir, c.ContactsFile)
}

// Location resolves Timezone. "Local" and "" map to the host zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("config: ETL_TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(val)
		if err == nil {
			return b
		}
	}
	return fallback
}

func getEnvList(key string, fallback []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(val, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
