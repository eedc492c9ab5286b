package python

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// SetupFile is the setuptools configuration file name
const SetupFile = "setup.cfg"

// Trove classifiers
const (
	classifierPy27 = "Programming Language :: Python :: 2.7"
	classifierPy3  = "Programming Language :: Python :: 3"
	classifierPy34 = "Programming Language :: Python :: 3.4"
	classifierPy35 = "Programming Language :: Python :: 3.5"
	classifierPy36 = "Programming Language :: Python :: 3.6"
	classifierPy37 = "Programming Language :: Python :: 3.7"
)

// ClassifierIndent returns the leading whitespace of the first Python 3
// classifier line. The second result is false if there is none.
func ClassifierIndent(contents string) (string, bool) {
	scanner := bufio.NewScanner(strings.NewReader(contents))
	for scanner.Scan() {
		line := scanner.Text()
		if strings.Contains(line, classifierPy3) {
			return line[:len(line)-len(strings.TrimLeft(line, " \t"))], true
		}
	}
	return "", false
}

// UpdateClassifiers drops the Python 3.x classifiers and lists 3.6 and 3.7
// after the generic Python 3 classifier. When there is no generic
// classifier, it is added together with 3.6 and 3.7 after the 2.7
// classifier. Contents without any Python 3 classifier are returned
// unchanged.
func UpdateClassifiers(contents string) string {
	indent, ok := ClassifierIndent(contents)
	if !ok {
		return contents
	}
	line := func(classifier string) string {
		return indent + classifier + "\n"
	}

	for _, classifier := range []string{classifierPy34, classifierPy35, classifierPy36, classifierPy37} {
		contents = strings.ReplaceAll(contents, line(classifier), "")
	}

	if strings.Contains(contents, line(classifierPy3)) {
		return strings.Replace(contents, line(classifierPy3),
			line(classifierPy3)+line(classifierPy36)+line(classifierPy37), 1)
	}
	return strings.Replace(contents, line(classifierPy27),
		line(classifierPy27)+line(classifierPy3)+line(classifierPy36)+line(classifierPy37), 1)
}

// UpdateSetupCfg rewrites the classifiers in dir's setup.cfg. It reports
// whether the file changed; a missing setup.cfg is not an error.
func UpdateSetupCfg(dir string) (bool, error) {
	path := filepath.Join(dir, SetupFile)
	contents, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", path, err)
	}

	updated := UpdateClassifiers(string(contents))
	if updated == string(contents) {
		return false, nil
	}
	if err := os.WriteFile(path, []byte(updated), 0644); err != nil {
		return false, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return true, nil
}
