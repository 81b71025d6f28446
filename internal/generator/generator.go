package generator

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"strings"

	"github.com/nx-club/cz/internal/husky"
	"github.com/nx-club/cz/internal/pkgjson"
	"github.com/nx-club/cz/internal/scaffold"
	"github.com/nx-club/cz/internal/tree"
	"github.com/nx-club/cz/internal/versions"
	"github.com/nx-club/cz/internal/vscode"
	"github.com/nx-club/cz/internal/workspace"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
)

const (
	gitDir          = ".git"
	czConfigSuffix  = ".cz-config.js"
	lintStagedRC    = ".lintstagedrc.js"
	huskyPackageKey = "husky"
)

var jsonStyle = &pretty.Options{Width: 80, Indent: "  "}

// Installer installs the workspace dependencies.
type Installer interface {
	Install(ctx context.Context) error
}

// Generator runs the init generator against a tree.
type Generator struct {
	Tree *tree.Tree

	// Versions overrides the embedded version table.
	Versions versions.Table

	// Installer runs after the tree is committed; nil skips installation.
	Installer Installer

	Log *slog.Logger
}

// Run applies Init, commits the tree and runs the follow-up tasks. With
// DryRun set nothing is written. It returns the changes made to the tree.
func (g *Generator) Run(ctx context.Context, opts Options) ([]tree.Change, error) {
	task, err := g.Init(opts)
	if err != nil {
		return nil, err
	}
	changes := g.Tree.ListChanges()
	if opts.DryRun {
		return changes, nil
	}

	if err := g.Tree.Commit(); err != nil {
		return changes, fmt.Errorf("writing workspace: %w", err)
	}
	if err := task(ctx); err != nil {
		return changes, err
	}
	return changes, nil
}

// Init records every file change in the tree and returns the tasks to run
// after the tree is committed.
func (g *Generator) Init(opts Options) (Task, error) {
	opts = opts.Normalize()
	log := g.logger()

	isGit := g.Tree.Exists(gitDir)
	if !isGit {
		log.Warn("no .git directory found; skipping package.json scripts and git hook wiring")
	}

	table := g.Versions
	if table.Len() == 0 {
		table = versions.Default()
	}
	if !opts.LintStaged {
		table = table.Without(versions.LintStaged)
	}

	if err := g.updatePackageJSON(table, isGit); err != nil {
		return nil, err
	}
	if err := g.updateVSCodeExtensions(); err != nil {
		return nil, err
	}
	if err := g.updateWorkspaceConfig(opts); err != nil {
		return nil, err
	}

	if !opts.SkipFormat {
		g.formatFiles()
	}

	var install Task
	if !opts.SkipInstall && g.Installer != nil {
		install = g.Installer.Install
	}
	return RunSerial(install, g.installHusky(husky.Detect(g.Tree))), nil
}

func (g *Generator) logger() *slog.Logger {
	if g.Log != nil {
		return g.Log
	}
	return slog.Default()
}

// updatePackageJSON adds the tooling to devDependencies and, inside a git
// repository, wires the npm scripts.
func (g *Generator) updatePackageJSON(table versions.Table, isGit bool) error {
	data, err := g.Tree.Read(pkgjson.FileName)
	if err != nil {
		return err
	}
	m, err := pkgjson.Parse(data)
	if err != nil {
		return fmt.Errorf("%s: %w", pkgjson.FileName, err)
	}

	m = pkgjson.MergeDependencies(m, table)
	if isGit {
		m = pkgjson.MergeScripts(m, pkgjson.DefaultScripts())
	}

	out := data
	if m.Changed() {
		if out, err = m.Encode(); err != nil {
			return fmt.Errorf("encoding %s: %w", pkgjson.FileName, err)
		}
	}
	if isGit && gjson.GetBytes(out, huskyPackageKey).IsObject() && !husky.HasLegacyHook(out, huskyPackageKey) {
		if out, err = husky.SetLegacyHook(out, huskyPackageKey); err != nil {
			return fmt.Errorf("updating %s husky hooks: %w", pkgjson.FileName, err)
		}
	}

	if string(out) != string(data) {
		g.Tree.Write(pkgjson.FileName, out)
	}
	return nil
}

// updateVSCodeExtensions recommends the commitizen extension when the
// workspace already has an extensions.json.
func (g *Generator) updateVSCodeExtensions() error {
	if !g.Tree.Exists(vscode.ExtensionsFile) {
		return nil
	}
	data, err := g.Tree.Read(vscode.ExtensionsFile)
	if err != nil {
		return err
	}
	out, changed, err := vscode.MergeRecommendation(data, versions.VSCodeExtension())
	if err != nil {
		return fmt.Errorf("%s: %w", vscode.ExtensionsFile, err)
	}
	if changed {
		g.Tree.Write(vscode.ExtensionsFile, out)
	}
	return nil
}

// updateWorkspaceConfig renders the configuration files with the commit
// scopes of the workspace.
func (g *Generator) updateWorkspaceConfig(opts Options) error {
	desc, err := workspace.Load(g.Tree)
	if err != nil {
		return err
	}
	buckets, err := workspace.Classify(desc)
	if err != nil {
		return err
	}
	if buckets.Empty() {
		g.logger().Warn("workspace has no projects; commit scopes are limited to the workspace scopes", "kind", desc.Kind)
	}

	sopts := scaffold.Options{
		Set:  scaffold.SetInit,
		Data: scaffold.NewInitData(buckets, opts.IsPlugin()),
	}
	if !opts.LintStaged {
		sopts.Skip = []string{lintStagedRC}
	}
	result, err := scaffold.Generate(g.Tree, sopts)
	if err != nil {
		return err
	}

	selected := opts.Language + czConfigSuffix
	for _, f := range result.Files {
		if !strings.HasSuffix(f, czConfigSuffix) || f == czConfigSuffix {
			continue
		}
		if f == selected {
			if err := g.Tree.Rename(f, czConfigSuffix); err != nil {
				return err
			}
			continue
		}
		g.Tree.Delete(f)
	}
	return nil
}

// formatFiles re-indents every JSON file written by this run.
func (g *Generator) formatFiles() {
	for _, c := range g.Tree.ListChanges() {
		if c.Type == tree.Delete || path.Ext(c.Path) != ".json" {
			continue
		}
		if !gjson.ValidBytes(c.Content) {
			g.logger().Warn("skipping format of invalid JSON", "path", c.Path)
			continue
		}
		formatted := pretty.PrettyOptions(c.Content, jsonStyle)
		if string(formatted) != string(c.Content) {
			g.Tree.WriteMode(c.Path, formatted, c.Mode)
		}
	}
}

func (g *Generator) installHusky(style husky.Style) Task {
	return func(context.Context) error {
		if err := husky.Install(g.Tree, style); err != nil {
			return fmt.Errorf("installing commit-msg hook: %w", err)
		}
		if err := g.Tree.Commit(); err != nil {
			return fmt.Errorf("writing commit-msg hook: %w", err)
		}
		return nil
	}
}
