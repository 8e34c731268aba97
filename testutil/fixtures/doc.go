// Package fixtures builds valid domain values and seeded event stores for tests.
package fixtures
