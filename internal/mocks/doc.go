// Package mocks provides hand-written test doubles for the relay's
// interfaces. Each mock records its calls and lets tests override
// behavior with function fields.
package mocks
