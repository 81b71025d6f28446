// Package husky wires commitlint into the git commit-msg hook for each
// husky configuration style: the .husky/ directory of husky 7 and the
// hooks map of the older .huskyrc files and package.json block.
package husky
