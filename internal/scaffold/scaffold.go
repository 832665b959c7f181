package scaffold

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"text/template"
	"time"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/OgnjenAdzic28/portfolio/internal/config"
	"github.com/OgnjenAdzic28/portfolio/internal/util"
)

// ArchetypePath is the post template of a site, relative to its root.
const ArchetypePath = "archetypes/post.mdoc"

// CreateNewSite lays out a site in dir: a site.yaml holding the defaults, the
// posts directory with a welcome post and the post archetype.
func CreateNewSite(dir string) error {
	cfg := config.Default()
	if err := os.MkdirAll(filepath.Join(dir, filepath.FromSlash(cfg.PostsDir())), 0755); err != nil {
		return fmt.Errorf("failed to create posts directory: %w", err)
	}
	if err := os.MkdirAll(filepath.Join(dir, filepath.Dir(ArchetypePath)), 0755); err != nil {
		return fmt.Errorf("failed to create archetypes directory: %w", err)
	}

	siteYAML, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", config.DefaultConfigFile, err)
	}
	files := map[string][]byte{
		config.DefaultConfigFile: siteYAML,
		ArchetypePath:            []byte(archetypePostContent),
	}
	for path, data := range files {
		if err := writeNew(filepath.Join(dir, filepath.FromSlash(path)), data); err != nil {
			return err
		}
	}

	if _, err := CreateNewPost(dir, cfg, "Hello World"); err != nil {
		return err
	}
	log.Info().Str("dir", dir).Msg("site scaffolded, run 'portfolio serve --dev' inside it")
	return nil
}

// CreateNewPost writes a post titled title into the site at root, from the
// site's archetype when it has one. It returns the path of the new file.
func CreateNewPost(root string, cfg config.SiteConfig, title string) (string, error) {
	slug := util.Slugify(title)
	if slug == "" {
		return "", fmt.Errorf("title %q does not yield a usable slug", title)
	}

	tmplBytes, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(ArchetypePath)))
	if errors.Is(err, os.ErrNotExist) {
		tmplBytes, err = []byte(archetypePostContent), nil
	}
	if err != nil {
		return "", fmt.Errorf("could not read archetype file %s: %w", ArchetypePath, err)
	}
	tmpl, err := template.New("archetype").Funcs(template.FuncMap{"yaml": yamlScalar}).Parse(string(tmplBytes))
	if err != nil {
		return "", fmt.Errorf("failed to parse archetype file %s: %w", ArchetypePath, err)
	}

	data := struct {
		Title  string
		Slug   string
		Date   string
		Author string
	}{
		Title:  title,
		Slug:   slug,
		Date:   time.Now().Format(time.DateOnly),
		Author: cfg.Author,
	}
	var output bytes.Buffer
	if err := tmpl.Execute(&output, data); err != nil {
		return "", fmt.Errorf("failed to execute archetype template: %w", err)
	}

	path := filepath.Join(cfg.PostsPath(root), slug+cfg.PostExt)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", err
	}
	if err := writeNew(path, output.Bytes()); err != nil {
		return "", err
	}
	log.Info().Str("path", path).Msg("created post")
	return path, nil
}

// yamlScalar quotes s as a YAML flow scalar so titles with colons survive.
func yamlScalar(s string) (string, error) {
	node := yaml.Node{Kind: yaml.ScalarNode, Value: s, Style: yaml.DoubleQuotedStyle}
	out, err := yaml.Marshal(&node)
	if err != nil {
		return "", err
	}
	return string(bytes.TrimRight(out, "\n")), nil
}

// writeNew refuses to overwrite existing files.
func writeNew(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}
	return f.Close()
}

const archetypePostContent = `---
title: {{ yaml .Title }}
publishedDate: {{ .Date }}
excerpt: ""
featured: false
tags: []
author:
  name: {{ yaml .Author }}
---

Write something meaningful here.
`
