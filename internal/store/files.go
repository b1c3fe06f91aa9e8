package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fjacquet/budget-tracker/internal/logging"
	"fjacquet/budget-tracker/internal/models"
	"fjacquet/budget-tracker/internal/parsererror"

	"gopkg.in/yaml.v3"
)

// ConfigFiles loads the categories and budgets YAML files.
type ConfigFiles struct {
	CategoriesFile string
	BudgetsFile    string
	logger         logging.Logger
}

// NewConfigFiles creates a ConfigFiles for the given file names.
func NewConfigFiles(categoriesFile, budgetsFile string, logger logging.Logger) *ConfigFiles {
	if logger == nil {
		logger = logging.Nop()
	}
	return &ConfigFiles{
		CategoriesFile: categoriesFile,
		BudgetsFile:    budgetsFile,
		logger:         logger,
	}
}

// FindConfigFile looks for a configuration file in standard locations
func (s *ConfigFiles) FindConfigFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filename,
		filepath.Join("config", filename),
		filepath.Join("data", filename),
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}

	homeDir, err := os.UserHomeDir()
	if err == nil {
		configPath := filepath.Join(homeDir, ".config", "budget-tracker", filename)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}
	}

	return "", os.ErrNotExist
}

// readConfigFile returns the file's contents, or nil when it cannot be found.
func (s *ConfigFiles) readConfigFile(filename string) ([]byte, string, error) {
	filePath, err := s.FindConfigFile(filename)
	if errors.Is(err, os.ErrNotExist) {
		s.logger.Warn("Configuration file not found", logging.F(logging.FieldFile, filename))
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("error resolving %s: %w", filename, err)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, "", fmt.Errorf("error reading %s: %w", filePath, err)
	}
	return data, filePath, nil
}

// LoadCategories loads categories from the YAML file. A missing file yields no
// categories. Both a top-level "categories:" list and a bare list are accepted.
func (s *ConfigFiles) LoadCategories() ([]models.CategoryConfig, error) {
	filename := s.CategoriesFile
	if filename == "" {
		filename = "categories.yaml"
	}

	data, filePath, err := s.readConfigFile(filename)
	if err != nil || data == nil {
		return []models.CategoryConfig{}, err
	}

	var categoriesConfig models.CategoriesConfig
	if err := yaml.Unmarshal(data, &categoriesConfig); err == nil && len(categoriesConfig.Categories) > 0 {
		return normalizeCategories(categoriesConfig.Categories), nil
	}

	var categories []models.CategoryConfig
	if err := yaml.Unmarshal(data, &categories); err != nil {
		return nil, fmt.Errorf("error parsing categories file %s: %w", filePath, err)
	}

	s.logger.Debug("Loaded categories",
		logging.F(logging.FieldFile, filePath),
		logging.F(logging.FieldCount, len(categories)))
	return normalizeCategories(categories), nil
}

func normalizeCategories(categories []models.CategoryConfig) []models.CategoryConfig {
	for i := range categories {
		for j, k := range categories[i].Keywords {
			categories[i].Keywords[j] = strings.ToLower(strings.TrimSpace(k))
		}
	}
	return categories
}

// LoadBudgetsConfig loads and validates the budgets file. A missing file yields an
// empty configuration.
func (s *ConfigFiles) LoadBudgetsConfig() (models.BudgetsConfig, error) {
	filename := s.BudgetsFile
	if filename == "" {
		filename = "budgets.yaml"
	}

	data, filePath, err := s.readConfigFile(filename)
	if err != nil || data == nil {
		return models.BudgetsConfig{Budgets: []models.BudgetData{}}, err
	}

	var cfg models.BudgetsConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return models.BudgetsConfig{}, fmt.Errorf("error parsing budgets file %s: %w", filePath, err)
	}

	for i := range cfg.Budgets {
		if err := validateBudget(&cfg.Budgets[i]); err != nil {
			return models.BudgetsConfig{}, err
		}
	}
	for _, sub := range cfg.Subscriptions {
		if !sub.Cycle.Valid() {
			return models.BudgetsConfig{}, &parsererror.ValidationError{
				Subject: "subscription " + sub.Name,
				Reason:  fmt.Sprintf("unknown billing cycle %q", sub.Cycle),
			}
		}
	}

	s.logger.Debug("Loaded budgets",
		logging.F(logging.FieldFile, filePath),
		logging.F(logging.FieldCount, len(cfg.Budgets)))
	return cfg, nil
}

// LoadBudgets returns only the budget definitions of the budgets file.
func (s *ConfigFiles) LoadBudgets() ([]models.BudgetData, error) {
	cfg, err := s.LoadBudgetsConfig()
	if err != nil {
		return nil, err
	}
	return cfg.Budgets, nil
}

// SaveBudgets writes cfg to the budgets file, creating its directory if needed.
func (s *ConfigFiles) SaveBudgets(cfg models.BudgetsConfig) error {
	filePath := s.BudgetsFile
	if filePath == "" {
		filePath = "budgets.yaml"
	}
	if found, err := s.FindConfigFile(filePath); err == nil {
		filePath = found
	}

	if err := os.MkdirAll(filepath.Dir(filePath), models.PermissionDirectory); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling budgets: %w", err)
	}
	if err := os.WriteFile(filePath, data, models.PermissionConfigFile); err != nil {
		return fmt.Errorf("error writing budgets: %w", err)
	}
	return nil
}

func validateBudget(b *models.BudgetData) error {
	if strings.TrimSpace(b.Name) == "" {
		return &parsererror.ValidationError{Subject: "budget", Reason: "name is required"}
	}
	if b.Amount < 0 {
		return &parsererror.ValidationError{Subject: "budget " + b.Name, Reason: "amount must not be negative"}
	}
	if b.Spent < 0 {
		return &parsererror.ValidationError{Subject: "budget " + b.Name, Reason: "spent must not be negative"}
	}
	if b.Period == "" {
		b.Period = models.PeriodMonthly
	}
	switch b.Period {
	case models.PeriodDaily, models.PeriodWeekly, models.PeriodMonthly, models.PeriodYearly, models.PeriodCustom:
	default:
		return &parsererror.ValidationError{Subject: "budget " + b.Name, Reason: fmt.Sprintf("unknown period %q", b.Period)}
	}
	if b.EndDate != nil && b.EndDate.Before(b.StartDate) {
		return &parsererror.ValidationError{Subject: "budget " + b.Name, Reason: "end_date is before start_date"}
	}
	return nil
}
