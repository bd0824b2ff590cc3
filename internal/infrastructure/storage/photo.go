// Package storage persiste les photos des tournées sur le disque local.
package storage

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/maleksellami/caisse-backend/internal/application/tour"
	"github.com/maleksellami/caisse-backend/internal/domain"
)

var _ tour.PhotoStore = (*PhotoStore)(nil)

// PhotoStore écrit les photos reçues en base64 dans un répertoire servi en statique.
type PhotoStore struct {
	dir     string
	baseURL string
}

// NewPhotoStore crée le répertoire de destination si besoin.
func NewPhotoStore(dir, baseURL string) (*PhotoStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("créer le répertoire photos: %w", err)
	}
	return &PhotoStore{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Save décode la photo (data URI ou base64 nu) et retourne son URL publique.
func (s *PhotoStore) Save(base64Data, prefix string) (string, error) {
	ext := ".jpg"
	if strings.HasPrefix(base64Data, "data:") {
		mime, rest, found := strings.Cut(base64Data, ",")
		if !found {
			return "", domain.ErrInvalidInput
		}
		if strings.Contains(mime, "image/png") {
			ext = ".png"
		}
		base64Data = rest
	}

	raw, err := base64.StdEncoding.DecodeString(base64Data)
	if err != nil {
		return "", domain.ErrInvalidInput
	}

	name := fmt.Sprintf("%s_%s%s", prefix, uuid.NewString(), ext)
	if err := os.WriteFile(filepath.Join(s.dir, name), raw, 0o644); err != nil {
		return "", fmt.Errorf("écrire la photo: %w", err)
	}
	return s.baseURL + "/" + name, nil
}
