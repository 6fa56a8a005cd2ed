package externals

import (
	"regexp"
	"slices"
	"strings"
)

const wordpressNamespace = "@wordpress/"

// Packages published under @wordpress/ that are not shipped as scripts by
// WordPress core and therefore have to be bundled.
var bundledPackages = []string{
	"@wordpress/icons",
	"@wordpress/interface",
}

var dashLetterRe = regexp.MustCompile(`-([a-z])`)

// GlobalPath locates a value on the global object, one property per segment.
type GlobalPath []string

type Mapping interface {
	// Global returns the path of the global variable that provides request.
	Global(request string) (GlobalPath, bool)
	// Handle returns the script handle WordPress registers for request.
	Handle(request string) (string, bool)
}

type wordpress struct{}

// WordPress returns the default mapping for scripts shipped with WordPress core.
func WordPress() Mapping {
	return wordpress{}
}

func (wordpress) Global(request string) (GlobalPath, bool) {
	switch request {
	case "moment":
		return GlobalPath{request}, true
	case "@babel/runtime/regenerator":
		return GlobalPath{"regeneratorRuntime"}, true
	case "lodash", "lodash-es":
		return GlobalPath{"lodash"}, true
	case "jquery":
		return GlobalPath{"jQuery"}, true
	case "react":
		return GlobalPath{"React"}, true
	case "react-dom":
		return GlobalPath{"ReactDOM"}, true
	case "react/jsx-runtime":
		return GlobalPath{"ReactJSXRuntime"}, true
	}

	if slices.Contains(bundledPackages, request) {
		return nil, false
	}

	name, ok := wordpressPackage(request)
	if !ok {
		return nil, false
	}

	return GlobalPath{"wp", camelCaseDash(name)}, true
}

func (wordpress) Handle(request string) (string, bool) {
	switch request {
	case "@babel/runtime/regenerator":
		return "wp-polyfill", true
	case "lodash-es":
		return "lodash", true
	case "react/jsx-runtime":
		return "react-jsx-runtime", true
	}

	name, ok := wordpressPackage(request)
	if !ok {
		return "", false
	}

	return "wp-" + name, true
}

// wordpressPackage returns the bare package name of an @wordpress/ import.
// Deep imports such as @wordpress/foo/bar are not provided as globals.
func wordpressPackage(request string) (string, bool) {
	name, ok := strings.CutPrefix(request, wordpressNamespace)
	if !ok || name == "" || strings.Contains(name, "/") {
		return "", false
	}
	return name, true
}

func camelCaseDash(s string) string {
	return dashLetterRe.ReplaceAllStringFunc(s, func(m string) string {
		return strings.ToUpper(m[1:])
	})
}
