package common

import (
	"os"
	"strconv"
	"strings"
)

// Text-extractor selection for the document text stage.
const (
	ExtractorInProcess = "inprocess"
	ExtractorPdftotext = "pdftotext"
)

// Config holds all application configuration
type Config struct {
	Server ServerConfig
	Upload UploadConfig
	PDF    PDFConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	HTTPAddr string
}

// UploadConfig bounds a single extraction request
type UploadConfig struct {
	MaxUploadMB int64
	MaxFiles    int
}

// PDFConfig selects and configures the document text extractor
type PDFConfig struct {
	Extractor    string // "inprocess" | "pdftotext"
	PdftotextBin string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPAddr: getEnv("HTTP_ADDR", ":8080"),
		},
		Upload: UploadConfig{
			MaxUploadMB: getEnvAsInt64("MAX_UPLOAD_MB", 32),
			MaxFiles:    getEnvAsInt("MAX_FILES", 50),
		},
		PDF: PDFConfig{
			Extractor:    strings.ToLower(getEnv("PDF_EXTRACTOR", ExtractorInProcess)),
			PdftotextBin: getEnv("PDFTOTEXT_BIN", "pdftotext"),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.Server.HTTPAddr == "" {
		return NewAppError("CONFIG_ERROR", "HTTP_ADDR is required", ErrInvalidInput)
	}
	if c.Upload.MaxUploadMB <= 0 {
		return NewAppError("CONFIG_ERROR", "MAX_UPLOAD_MB must be positive", ErrInvalidInput)
	}
	if c.Upload.MaxFiles <= 0 {
		return NewAppError("CONFIG_ERROR", "MAX_FILES must be positive", ErrInvalidInput)
	}
	switch c.PDF.Extractor {
	case ExtractorInProcess, ExtractorPdftotext:
	default:
		return NewAppError("CONFIG_ERROR", "PDF_EXTRACTOR must be \"inprocess\" or \"pdftotext\"", ErrInvalidInput)
	}
	return nil
}
