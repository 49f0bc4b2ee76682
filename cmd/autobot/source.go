package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rhuss/autobot/pkg/api"
)

// languageFor picks the language from the --lang flag or, when that is
// empty, from the file extension.
func languageFor(flag, path string) (api.Language, error) {
	if flag != "" {
		return api.ParseLanguage(flag)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".py":
		return api.LanguagePython, nil
	case ".java":
		return api.LanguageJava, nil
	}
	return "", fmt.Errorf("cannot infer language of %q, use --lang python|java", path)
}

// readSource reads path, or stdin when path is "-".
func readSource(path string, stdin io.Reader) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("reading source: %w", err)
	}
	return string(data), nil
}
