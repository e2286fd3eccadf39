// Package testsupport holds fixtures shared by package tests: settings files
// and small annotation artifacts.
package testsupport
