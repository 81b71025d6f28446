// Package scaffold renders the embedded template sets into a workspace
// tree. The "init" set holds the commit-convention configuration files and
// the "mvc" set the skeleton of a model/view/controller library.
//
// Files ending in .tmpl are executed with text/template and written without
// the suffix; all other files are copied verbatim. Path segments of the form
// __key__ are replaced from Options.Names.
package scaffold
