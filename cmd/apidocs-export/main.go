// Command apidocs-export assembles an OpenAPI document from command-line
// settings plus an optional definitions file and writes the serialised spec
// to a file or stdout. Missing title/version settings are prompted for when
// running interactively.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"golang.org/x/term"

	"github.com/goliatone/go-apidocs"
)

func main() {
	title := flag.String("title", "", "application display name")
	apiVersion := flag.String("api-version", "1", "documented API version")
	openapiVersion := flag.String("openapi-version", "3.0.2", "OpenAPI format version")
	root := flag.String("application-root", "", "application root mount path")
	definitions := flag.String("definitions", "", "JSON file of named schema definitions")
	format := flag.String("format", "json", "output format: json or yaml")
	output := flag.String("output", "", "output file (stdout if empty)")
	flag.Parse()

	if *format != "json" && *format != "yaml" {
		log.Fatalf("unsupported format %q", *format)
	}

	if *title == "" {
		*title = promptTitle()
	}

	api := apidocs.New(
		apidocs.WithTitle(*title),
		apidocs.WithAPIVersion(*apiVersion),
		apidocs.WithOpenAPIVersion(*openapiVersion),
		apidocs.WithApplicationRoot(*root),
	)

	if *definitions != "" {
		if err := loadDefinitions(api, *definitions); err != nil {
			log.Fatalf("Failed to load definitions: %v", err)
		}
	}

	if err := api.Assemble(); err != nil {
		log.Fatalf("Failed to assemble document: %v", err)
	}

	var (
		data []byte
		err  error
	)
	if *format == "yaml" {
		data, err = api.ToYAML()
	} else {
		data, err = api.ToJSON()
	}
	if err != nil {
		log.Fatalf("Failed to serialise document: %v", err)
	}

	if *output != "" {
		if err := os.WriteFile(*output, data, 0o644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		fmt.Printf("Spec written to %s\n", *output)
	} else {
		fmt.Println(string(data))
	}
}

// promptTitle asks for the application name when running interactively and
// falls back to a placeholder otherwise.
func promptTitle() string {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return "API"
	}
	answer := "API"
	prompt := &survey.Input{
		Message: "Application name:",
		Default: answer,
	}
	if err := survey.AskOne(prompt, &answer); err != nil {
		log.Fatalf("Prompt failed: %v", err)
	}
	return answer
}

// loadDefinitions registers each named schema from a JSON file of the form
// {"Pet": {"type": "object", ...}, ...}.
func loadDefinitions(api *apidocs.API, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var schemas map[string]json.RawMessage
	if err := json.Unmarshal(data, &schemas); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	for name, schema := range schemas {
		api.AddDefinition(name, schema)
	}
	return nil
}
