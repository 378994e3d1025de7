package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/alimgiray/secmetrics/pkg/logger"
)

// maprepos runs a command for each repository URL found in one or more
// service metadata JSON files. The files look like:
//
//	{"codeRepositories": [{"url": "https://github.com/$ORG/$REPO.git"}, ...]}
//
// A "{}" in the command is replaced with the repository URL.

type codeRepository struct {
	URL string `json:"url"`
}

type serviceMetadata struct {
	Service          string           `json:"service"`
	ServiceKey       string           `json:"serviceKey"`
	CodeRepositories []codeRepository `json:"codeRepositories"`
}

// Name returns a printable service name
func (m *serviceMetadata) Name() string {
	if m.Service != "" {
		return m.Service
	}
	if m.ServiceKey != "" {
		return m.ServiceKey
	}
	return "unnamed"
}

// RepoURLs returns the repository URLs of a service, warning about missing
// entries unless quiet is set
func (m *serviceMetadata) RepoURLs(quiet bool) []string {
	if len(m.CodeRepositories) == 0 {
		if !quiet {
			logger.Warnf("No codeRepositories found for service %s", m.Name())
		}
		return nil
	}

	var urls []string
	for i, repo := range m.CodeRepositories {
		if repo.URL == "" {
			if !quiet {
				logger.Warnf("No url found for repo %d in service %s", i, m.Name())
			}
			continue
		}
		urls = append(urls, repo.URL)
	}

	return urls
}

func readServiceMetadata(path string) (*serviceMetadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var meta serviceMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return &meta, nil
}

func runCommand(command string, dryRun bool) error {
	if dryRun {
		fmt.Printf("would run %q\n", command)
		return nil
	}

	cmd := exec.Command("sh", "-c", command)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func main() {
	command := flag.String("c", "", "Command to run on each repo, with {} replaced by the repo URL. Defaults to printing the service name and repo URL.")
	dryRun := flag.Bool("n", false, "Print the commands we'd run, but don't run them.")
	quiet := flag.Bool("q", false, "Suppress warnings.")
	flag.Parse()

	files := flag.Args()
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "usage: maprepos [-c command] [-n] [-q] FILES...")
		os.Exit(2)
	}

	for _, file := range files {
		meta, err := readServiceMetadata(file)
		if err != nil {
			logger.Fatalf("Failed to read service metadata: %v", err)
		}

		for _, url := range meta.RepoURLs(*quiet) {
			if *command == "" {
				fmt.Printf("%s %s\n", meta.Name(), url)
				continue
			}
			if err := runCommand(strings.ReplaceAll(*command, "{}", url), *dryRun); err != nil {
				logger.Errorf("Command failed for %s: %v", url, err)
			}
		}
	}
}
