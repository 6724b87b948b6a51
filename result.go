package id3meta

import (
	"github.com/simonhull/id3meta/internal/inspect"
	"github.com/simonhull/id3meta/internal/mojibake"
	"github.com/simonhull/id3meta/internal/types"
)

// Result is an alias to types.Result.
type Result = types.Result

// Fields is an alias to types.Fields.
type Fields = types.Fields

// Field is an alias to types.Field.
type Field = types.Field

// Source is an alias to types.Source.
type Source = types.Source

// Field identifiers.
const (
	FieldArtist = types.FieldArtist
	FieldAlbum  = types.FieldAlbum
	FieldTitle  = types.FieldTitle
)

// Field sources.
const (
	SourceNone      = types.SourceNone
	SourceID3v2     = types.SourceID3v2
	SourceID3v1     = types.SourceID3v1
	SourceInspector = types.SourceInspector
)

// Inspector is a secondary metadata source; see WithInspector.
type Inspector = inspect.Inspector

// InspectReport is what an Inspector returns.
type InspectReport = inspect.Report

// RepairPolicy is an ordered mojibake repair table; see WithRepairPolicy.
type RepairPolicy = mojibake.Policy

// RepairStep is one entry of a RepairPolicy.
type RepairStep = mojibake.Step
