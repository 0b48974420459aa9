// Package profiled extracts structured profile records from rendered profile
// pages whose layout is not exposed through a stable schema.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. The extraction engine lives in extract/, and
// document implementations live in subdirectories named after their primary
// dependency (rod/, goquery/). The generative-text collaborator lives in
// gemini/.
package profiled
