// Package cache stores synthesized flashcard audio on disk so repeated
// sessions never pay for the same synthesis twice.
package cache
