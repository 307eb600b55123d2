package storage

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"

	"competition_portal_backend/internals/constants"
	helper "competition_portal_backend/internals/helpers"
)

// PublicPrefix is the URL prefix uploaded files are served under.
const PublicPrefix = "/uploads"

/*
BlobService is the upload facade controllers talk to. Files live on local
disk under a root directory, served read-only at /uploads.

  - SaveImage re-encodes jpeg/png/webp uploads to WebP.
  - SaveCertificate keeps PDFs raw and re-encodes images.
  - SaveTemp / MoveMaterial / RemoveTemp implement the two-phase material
    upload (validate per file, move accepted files into place).
*/
type BlobService interface {
	SaveImage(subDir string, fh *multipart.FileHeader) (publicURL string, err error)
	SaveCertificate(subDir string, fh *multipart.FileHeader) (publicURL string, err error)

	SaveTemp(scope string, fh *multipart.FileHeader) (tempPath string, err error)
	MoveMaterial(tempPath string, competitionID, userID, filename string) (publicURL string, err error)
	RemoveTemp(tempPath string) error

	// ResolvePublicURL maps a /uploads/... URL back to a disk path.
	ResolvePublicURL(publicURL string) (diskPath string, ok bool)
}

type LocalStorage struct {
	Root string
}

func NewLocalStorage(root string) *LocalStorage {
	if root == "" {
		root = "uploads"
	}
	return &LocalStorage{Root: root}
}

func (s *LocalStorage) ensureDir(dir string) error {
	return os.MkdirAll(dir, 0o755)
}

func (s *LocalStorage) publicURL(parts ...string) string {
	return PublicPrefix + "/" + strings.Join(parts, "/")
}

// SaveImage stores an avatar/cover style upload, re-encoded to WebP.
func (s *LocalStorage) SaveImage(subDir string, fh *multipart.FileHeader) (string, error) {
	if fh == nil {
		return "", fiber.NewError(fiber.StatusBadRequest, "No file provided")
	}
	mime := fh.Header.Get("Content-Type")
	if !constants.IsAllowedMime(constants.ImageMimeTypes, mime) {
		return "", fiber.NewError(fiber.StatusBadRequest, "Only jpg/png/webp images are supported")
	}

	raw, err := readAll(fh)
	if err != nil {
		return "", err
	}
	encoded, err := EncodeWebP(raw, fh.Filename, 1600, 1600)
	if err != nil {
		return "", fiber.NewError(fiber.StatusBadRequest, "Unreadable image file")
	}

	name := strings.TrimSuffix(helper.GenerateUniqueFilename(fh.Filename), filepath.Ext(fh.Filename)) + ".webp"
	dir := filepath.Join(s.Root, subDir)
	if err := s.ensureDir(dir); err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(dir, name), encoded, 0o644); err != nil {
		return "", err
	}
	return s.publicURL(subDir, name), nil
}

// SaveCertificate accepts pdf/jpg/png/webp; PDFs are stored as-is.
func (s *LocalStorage) SaveCertificate(subDir string, fh *multipart.FileHeader) (string, error) {
	if fh == nil {
		return "", fiber.NewError(fiber.StatusBadRequest, "No file provided")
	}
	mime := fh.Header.Get("Content-Type")
	if !constants.IsAllowedMime(constants.CertificateMimeTypes, mime) {
		return "", fiber.NewError(fiber.StatusBadRequest, "Certificate must be a pdf or jpg/png/webp image")
	}

	if mime == "application/pdf" {
		name := helper.GenerateUniqueFilename(fh.Filename)
		dir := filepath.Join(s.Root, subDir)
		if err := s.ensureDir(dir); err != nil {
			return "", err
		}
		if err := s.writeMultipart(fh, filepath.Join(dir, name)); err != nil {
			return "", err
		}
		return s.publicURL(subDir, name), nil
	}
	return s.SaveImage(subDir, fh)
}

// SaveTemp writes an upload into a per-scope temp directory without
// validation. The caller decides whether to move or discard it.
func (s *LocalStorage) SaveTemp(scope string, fh *multipart.FileHeader) (string, error) {
	if fh == nil {
		return "", fiber.NewError(fiber.StatusBadRequest, "No file provided")
	}
	dir := filepath.Join(s.Root, "tmp", scope)
	if err := s.ensureDir(dir); err != nil {
		return "", err
	}
	path := filepath.Join(dir, helper.GenerateUniqueFilename(fh.Filename))
	if err := s.writeMultipart(fh, path); err != nil {
		return "", err
	}
	return path, nil
}

func (s *LocalStorage) MoveMaterial(tempPath, competitionID, userID, filename string) (string, error) {
	dir := filepath.Join(s.Root, "materials", competitionID, userID)
	if err := s.ensureDir(dir); err != nil {
		return "", err
	}
	target := filepath.Join(dir, filename)
	if err := os.Rename(tempPath, target); err != nil {
		return "", err
	}
	return s.publicURL("materials", competitionID, userID, filename), nil
}

func (s *LocalStorage) RemoveTemp(tempPath string) error {
	return os.Remove(tempPath)
}

func (s *LocalStorage) ResolvePublicURL(publicURL string) (string, bool) {
	if !strings.HasPrefix(publicURL, PublicPrefix+"/") {
		return "", false
	}
	rel := strings.TrimPrefix(publicURL, PublicPrefix+"/")
	rel = filepath.Clean(rel)
	if rel == "." || strings.HasPrefix(rel, "..") {
		return "", false
	}
	path := filepath.Join(s.Root, rel)
	if _, err := os.Stat(path); err != nil {
		return "", false
	}
	return path, true
}

func (s *LocalStorage) writeMultipart(fh *multipart.FileHeader, target string) error {
	src, err := fh.Open()
	if err != nil {
		return fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(target)
	if err != nil {
		return err
	}
	defer dst.Close()

	_, err = io.Copy(dst, src)
	return err
}

func readAll(fh *multipart.FileHeader) ([]byte, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, src); err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	return buf.Bytes(), nil
}
