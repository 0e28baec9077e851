// Package enumname canonicalizes raw API constant tokens (GL_TEXTURE_2D)
// into the identifiers used for generated enum members (Texture2D).
//
// The documentation pipeline consumes the Translator interface so that
// constants mentioned in reference pages are spelled exactly like the
// generated members. Default is the stock implementation:
//
//   - the configured constant prefix is stripped;
//   - the token is split on underscores, ALL-CAPS words are title-cased,
//     words starting with a digit are kept verbatim and other words only get
//     their first rune upper-cased;
//   - a result starting with a digit, or (in declaration context) matching a
//     reserved word case-insensitively, is prefixed with EscapeMarker.
//
// Translation is deterministic and idempotent:
// Translate(Translate(x, d), d) == Translate(x, d).
package enumname
