// Package eazyhealth turns health source material into plain-language
// explainers and scheduled briefings. It discovers trusted sources, extracts
// article text, fits the text into a token budget, asks a generative model
// for a structured result and guards against publishing near-duplicates.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, trafilatura/, gemini/).
package eazyhealth
