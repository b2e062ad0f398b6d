// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// AppBuildInfo carries build-time metadata injected by linker flags.
// It is printed on server start and exposed by the version endpoint.
type AppBuildInfo struct {
	buildVersion string
	buildDate    string
	buildCommit  string
}

// NewAppBuildInfo constructs [AppBuildInfo] from the provided build metadata.
// Empty values are reported as "N/A".
func NewAppBuildInfo(buildVersion, buildDate, buildCommit string) AppBuildInfo {
	return AppBuildInfo{
		buildVersion: orNA(buildVersion),
		buildDate:    orNA(buildDate),
		buildCommit:  orNA(buildCommit),
	}
}

func (a AppBuildInfo) BuildVersion() string { return a.buildVersion }
func (a AppBuildInfo) BuildDate() string    { return a.buildDate }
func (a AppBuildInfo) BuildCommit() string  { return a.buildCommit }

// VersionInfo is the public shape of the version endpoint.
type VersionInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Date    string `json:"buildDate"`
	Commit  string `json:"buildCommit"`
}

// VersionInfo renders the build metadata for the given application name.
func (a AppBuildInfo) VersionInfo(name string) VersionInfo {
	return VersionInfo{
		Name:    name,
		Version: a.buildVersion,
		Date:    a.buildDate,
		Commit:  a.buildCommit,
	}
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
