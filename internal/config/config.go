package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// Credentials holds the stored authentication data for the Meta Marketing API.
type Credentials struct {
	AccessToken string `json:"access_token"`
	AccountID   string `json:"account_id,omitempty"`
	APIVersion  string `json:"api_version,omitempty"`
}

func credentialsPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "meta-ads", "credentials.json"), nil
}

// Load reads the credentials file. Returns empty Credentials (not error) if
// the file doesn't exist.
func Load() (*Credentials, error) {
	path, err := credentialsPath()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Credentials{}, nil
		}
		return nil, err
	}
	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, err
	}
	return &creds, nil
}

// Save writes the credentials file with 0600 permissions.
func Save(creds *Credentials) error {
	path, err := credentialsPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// Clear removes the credentials file.
func Clear() error {
	path, err := credentialsPath()
	if err != nil {
		return err
	}
	err = os.Remove(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// Path returns the credentials file path for display.
func Path() string {
	p, _ := credentialsPath()
	return p
}
