package avatar

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"path"
	"path/filepath"
	"strings"
)

// PublicPrefix is the path segment under which stored avatars are referenced.
const PublicPrefix = "avatars"

var ErrNoExtension = errors.New("avatar: file name has no extension")

// Storage moves a temporarily stored upload to its permanent place and
// returns the public reference for it. Storing under an existing name
// overwrites the previous file.
type Storage interface {
	Store(ctx context.Context, tempPath, fileName string) (string, error)
}

// FileName derives the stored avatar name from the owner id and the
// extension of the uploaded file, e.g. "01HV.../photo.PNG" -> "01HV....png".
func FileName(ownerID, originalName string) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filepath.Base(originalName)), "."))
	if ext == "" {
		return "", ErrNoExtension
	}
	return ownerID + "." + ext, nil
}

func Reference(fileName string) string {
	return path.Join(PublicPrefix, fileName)
}

// GravatarURL is the default avatar for an email address.
func GravatarURL(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return "https://www.gravatar.com/avatar/" + hex.EncodeToString(sum[:])
}
