// Package mvc scaffolds model/view/controller libraries under libs/ and
// runs their build target.
package mvc
