// Package tenk extracts structured financial facts from 10-K regulatory
// filings. It is designed to keep the expensive part, calls to a generative
// text model, reproducible and cheap, by caching every query durably and
// sampling the filing years instead of querying all of them.
//
// The core functionalities include:
//   - Section Location: deterministic, regex-driven segmentation of a raw
//     10-K text into its named sections (business, risk factors, management
//     discussion, financial statements), with header/footer noise removal.
//   - Oracle Extraction: a model client that asks a generative text service
//     for a set of financial line items over a document, validates the JSON
//     answer, and normalizes each value to a plain dollar integer.
//   - Query Caching: a per-ticker durable store keyed by a deterministic
//     fingerprint of the requested item set, so a repeated query never costs
//     a second model call.
//   - Data Persistence: encoding and decoding of filing corpora and cached
//     results to human-readable JSONL files.
//
// This package serves as the foundational logic for the `tenk` command-line
// tool. Filing retrieval lives in the edgar subpackage and the Gemini-backed
// oracle in the gemini subpackage; both depend only on the narrow interfaces
// defined here.
package tenk
