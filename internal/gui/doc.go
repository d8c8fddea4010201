// Package gui is the raylib window front-end. Every frame it veils the
// previous one with translucent black so moving particles leave short
// trails, applies keyboard and mouse input to the world, steps it once and
// draws each particle coloured by speed.
package gui
