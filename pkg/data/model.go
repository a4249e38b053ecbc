package data

import "strings"

// Config holds the user's preferences. Exactly one record lives in the store,
// keyed by Index.
type Config struct {
	Index                string `json:"index"`
	TitleDirectory       string `json:"titleDirectory"`
	CemuDirectory        string `json:"cemuDirectory"`
	Language             string `json:"language"`
	MaxParallelDownloads int    `json:"maxParallelDownloads"`
	LastTitleID          string `json:"lastTitleId"`
}

type Title struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Region      string `json:"region"`
	ProductCode string `json:"productCode"`
	Version     string `json:"version"`
}

type TitleKey struct {
	TitleID string `json:"titleID"`
	Key     string `json:"key"`
	Name    string `json:"name,omitempty"`
	Region  string `json:"region,omitempty"`
}

type GraphicPack struct {
	ID          string `json:"id"`
	TitleID     string `json:"titleId"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Folder      string `json:"folder"`
}

// DownloadJob describes one requested transfer. It has no identity beyond
// its fields.
type DownloadJob struct {
	TitleID     string
	Destination string
	ContentType string // "game", "update", "dlc"
	Version     string
}

// NormalizeID returns the canonical form of a title id.
func NormalizeID(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}
