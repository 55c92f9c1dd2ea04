package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jwebster45206/dungeon-engine/pkg/catalog"
)

// Usage: validate [catalog.yaml]
// With no argument the embedded catalog is checked.
func main() {
	filename := ""
	if len(os.Args) > 1 {
		filename = os.Args[1]
	}

	validator := &CatalogValidator{}
	if err := validator.validateFile(filename); err != nil {
		fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Catalog is valid!")
}

// CatalogValidator layers naming rules on top of catalog.Validate.
type CatalogValidator struct {
	errors []string
}

func (v *CatalogValidator) validateFile(filename string) error {
	var cat *catalog.Catalog
	v.errors = nil

	if filename == "" {
		fmt.Println("Validating embedded catalog...")
		c, err := catalog.Default()
		if err != nil {
			return err
		}
		cat = c
	} else {
		fmt.Printf("Validating %s...\n", filename)
		ext := filepath.Ext(filename)
		if ext != ".yaml" && ext != ".yml" {
			return fmt.Errorf("catalog file must have a .yaml extension: %s", filepath.Base(filename))
		}

		data, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file %s: %w", filename, err)
		}

		// Strict decode first so typos in keys are reported, not ignored.
		var strict catalog.Catalog
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&strict); err != nil {
			return fmt.Errorf("file %s failed strict YAML decoding: %w", filename, err)
		}

		c, err := catalog.Parse(data)
		if err != nil {
			return err
		}
		cat = c
	}

	v.validateCatalog(cat)

	if len(v.errors) > 0 {
		return fmt.Errorf("validation errors:\n%s", strings.Join(v.errors, "\n"))
	}
	return nil
}

func (v *CatalogValidator) validateCatalog(c *catalog.Catalog) {
	for _, t := range c.Traits {
		v.validateIDFormat("trait ID", t.ID)
		if t.Description == "" {
			v.addError(fmt.Sprintf("trait '%s' has no description", t.ID))
		}
	}
	for _, it := range c.Starter.Items {
		v.validateIDFormat("starter item ID", it.ID)
	}
	for _, it := range c.Shop {
		v.validateIDFormat("shop item ID", it.ID)
	}
	for _, r := range c.Recipes {
		v.validateIDFormat("recipe ID", r.ID)
		v.validateIDFormat("recipe result ID", r.Result.ID)
	}
	if len(c.Starter.Skills) == 0 {
		v.addError("starter kit grants no skills")
	}
}

func (v *CatalogValidator) validateIDFormat(fieldName, id string) {
	if id == "" {
		return
	}
	if !isValidID(id) {
		v.addError(fmt.Sprintf("%s '%s' should be lowercase snake_case", fieldName, id))
	}
}

func (v *CatalogValidator) addError(msg string) {
	v.errors = append(v.errors, "  - "+msg)
}

var validIDRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*[a-z0-9]$|^[a-z]$`)

func isValidID(id string) bool {
	return validIDRegex.MatchString(id)
}
