package file

import (
	"archive/zip"
	"path"
	"strings"

	"minecrox-server/services/pack-api/utils/apperrors"
)

// blockedArchiveExtensions are entry extensions rejected inside uploaded
// archives: native executables, shared libraries, shell and batch scripts,
// installer packages and Java archives.
var blockedArchiveExtensions = map[string]bool{
	".exe": true,
	".dll": true,
	".bat": true,
	".cmd": true,
	".ps1": true,
	".sh":  true,
	".jar": true,
	".msi": true,
}

// ClassifyArchive opens the zip at archivePath and determines whether it is
// a datapack or a resource pack. Every entry must pass path and content
// safety checks before classification runs. An archive containing both
// data/ and assets/ trees counts as a datapack.
func ClassifyArchive(archivePath string) (Kind, error) {
	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return "", apperrors.New(apperrors.LayerDomain, apperrors.TypeValidation, "invalid zip file", err)
	}
	defer reader.Close()

	names := make([]string, 0, len(reader.File))
	for _, entry := range reader.File {
		names = append(names, normalizeEntryName(entry.Name))
	}

	if err := validateEntriesSafe(names); err != nil {
		return "", err
	}

	var hasPackMeta, hasData, hasAssets bool
	for _, name := range names {
		if strings.HasSuffix(name, "pack.mcmeta") {
			hasPackMeta = true
		}
		if strings.HasPrefix(name, "data/") {
			hasData = true
		}
		if strings.HasPrefix(name, "assets/") {
			hasAssets = true
		}
	}

	// Datapack wins when both trees are present.
	if hasPackMeta && hasData {
		return KindDatapack, nil
	}
	if hasPackMeta && hasAssets {
		return KindResourcePack, nil
	}
	return "", apperrors.New(apperrors.LayerDomain, apperrors.TypeValidation,
		"zip must be a resource pack or datapack", nil)
}

// normalizeEntryName converts backslashes to forward slashes so safety
// checks see one canonical separator. Leading slashes are preserved; an
// absolute entry is rejected, not rewritten.
func normalizeEntryName(name string) string {
	return strings.ReplaceAll(name, "\\", "/")
}

func validateEntriesSafe(names []string) error {
	for _, name := range names {
		if name == "" {
			continue
		}
		if strings.HasPrefix(name, "/") {
			return unsafeEntry(name)
		}
		segments := strings.Split(name, "/")
		if strings.Contains(segments[0], ":") {
			return unsafeEntry(name)
		}
		for _, segment := range segments {
			if segment == ".." {
				return unsafeEntry(name)
			}
		}
		if blockedArchiveExtensions[strings.ToLower(path.Ext(name))] {
			return apperrors.New(apperrors.LayerDomain, apperrors.TypeValidation,
				"zip contains blocked executable content", nil)
		}
	}
	return nil
}

func unsafeEntry(string) error {
	return apperrors.New(apperrors.LayerDomain, apperrors.TypeValidation, "unsafe zip entry", nil)
}
