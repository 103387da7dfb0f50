package convert

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"dtex/config"
	"dtex/state"
)

const outExt = ".tex"

// buildOutputPath returns output file path for the document target. Target
// may contain directories, they are kept unless NoDirs was requested.
// Optional user template replaces target name, on expansion failure target
// name is used. Path is cleaned and, if requested, transliterated.
func buildOutputPath(values Values, target, dst string, env *state.LocalEnv) string {
	target = filepath.FromSlash(target)
	outDir := determineOutputDir(target, dst, env)
	defaultFile := buildDefaultFileName(target, env)

	if env.Cfg.Project.OutputNameTemplate == "" {
		return filepath.Join(outDir, defaultFile)
	}

	expandedName := expandOutputNameTemplate(values, env)
	if expandedName == "" {
		// fallback to default name if template expansion failed
		return filepath.Join(outDir, defaultFile)
	}
	return assemblePathWithSubdirs(outDir, expandedName, env)
}

func determineOutputDir(target, dst string, env *state.LocalEnv) string {
	if env.NoDirs {
		return dst
	}
	return filepath.Join(dst, filepath.Dir(target))
}

func buildDefaultFileName(target string, env *state.LocalEnv) string {
	baseName := strings.TrimSuffix(filepath.Base(target), filepath.Ext(target))
	return cleanPathSegment(baseName, env) + outExt
}

func expandOutputNameTemplate(values Values, env *state.LocalEnv) string {
	expandedName, err := expandTemplate(config.OutputNameTemplateFieldName, env.Cfg.Project.OutputNameTemplate, values)
	if err != nil {
		env.Log.Warn("Unable to prepare output filename", zap.Error(err))
		return ""
	}
	return strings.TrimSuffix(filepath.FromSlash(strings.TrimSpace(expandedName)), outExt)
}

// assemblePathWithSubdirs takes an expanded template name (which may contain
// path separators for subdirectories) and assembles it into a full output path,
// cleaning and transliterating segments as needed
func assemblePathWithSubdirs(outDir, expandedName string, env *state.LocalEnv) string {
	pathSegments := splitAndCleanPath(expandedName)
	if len(pathSegments) == 0 {
		return outDir
	}

	dirParts := make([]string, 0, len(pathSegments)+1)
	dirParts = append(dirParts, outDir)
	for _, segment := range pathSegments[:len(pathSegments)-1] {
		dirParts = append(dirParts, cleanPathSegment(segment, env))
	}
	dirParts = append(dirParts, cleanPathSegment(pathSegments[len(pathSegments)-1], env)+outExt)
	return filepath.Join(dirParts...)
}

// splitAndCleanPath breaks path into segments dropping empty ones and
// attempts to climb up.
func splitAndCleanPath(path string) []string {
	path = strings.TrimSuffix(path, string(os.PathSeparator))
	segments := make([]string, 0, 8)

	for head, tail := filepath.Split(path); ; head, tail = filepath.Split(head) {
		if tail != "" && tail != "." && tail != ".." {
			segments = slices.Insert(segments, 0, tail)
		}
		head = strings.TrimSuffix(head, string(os.PathSeparator))
		if head == "" {
			break
		}
	}
	return segments
}

func cleanPathSegment(segment string, env *state.LocalEnv) string {
	if env.Cfg.Project.FileNameTransliterate {
		segment = slug.Make(segment)
	}
	return config.CleanFileName(segment)
}
