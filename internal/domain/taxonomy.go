package domain

import "slices"

// validStatuses lists the lifecycle of each kind
var validStatuses = map[Kind][]Status{
	KindNote:    {StatusFleeting, StatusDeveloping, StatusPermanent, StatusExported, StatusArchived},
	KindTask:    {StatusActive, StatusDone, StatusArchived},
	KindScratch: {StatusDraft, StatusArchived},
}

var defaultStatus = map[Kind]Status{
	KindNote:    StatusFleeting,
	KindTask:    StatusActive,
	KindScratch: StatusDraft,
}

type kindPair struct {
	from, to Kind
}

// conversionTable is part of the wire contract: clients converting an item
// expect exactly these resulting statuses.
var conversionTable = map[kindPair]map[Status]Status{
	{KindTask, KindNote}: {
		StatusActive:   StatusFleeting,
		StatusDone:     StatusPermanent,
		StatusArchived: StatusArchived,
	},
	{KindNote, KindTask}: {
		StatusFleeting:   StatusActive,
		StatusDeveloping: StatusActive,
		StatusPermanent:  StatusDone,
		StatusExported:   StatusDone,
		StatusArchived:   StatusArchived,
	},
	{KindScratch, KindNote}: {
		StatusDraft:    StatusFleeting,
		StatusArchived: StatusArchived,
	},
	{KindScratch, KindTask}: {
		StatusDraft:    StatusActive,
		StatusArchived: StatusArchived,
	},
	{KindNote, KindScratch}: {
		StatusFleeting:   StatusDraft,
		StatusDeveloping: StatusDraft,
		StatusPermanent:  StatusArchived,
		StatusExported:   StatusArchived,
		StatusArchived:   StatusArchived,
	},
	{KindTask, KindScratch}: {
		StatusActive:   StatusDraft,
		StatusDone:     StatusArchived,
		StatusArchived: StatusArchived,
	},
}

// pipeline is the in-kind maturity order used by NextStatus
var pipeline = map[Kind][]Status{
	KindNote: {StatusFleeting, StatusDeveloping, StatusPermanent, StatusExported},
	KindTask: {StatusActive, StatusDone},
}

// IsValid reports whether status belongs to the lifecycle of kind
func IsValid(kind Kind, status Status) bool {
	return slices.Contains(validStatuses[kind], status)
}

// ValidStatuses returns the statuses allowed for kind
func ValidStatuses(kind Kind) []Status {
	return slices.Clone(validStatuses[kind])
}

// DefaultStatus returns the status a new item of kind starts in
func DefaultStatus(kind Kind) Status {
	return defaultStatus[kind]
}

// MapStatusOnConversion returns the status an item in current ends up with
// when converted from one kind to another. It returns false when the kinds
// are equal or the pair has no mapping for current.
func MapStatusOnConversion(from, to Kind, current Status) (Status, bool) {
	if from == to {
		return "", false
	}
	mapped, ok := conversionTable[kindPair{from, to}][current]
	return mapped, ok
}

// NextStatus returns the next stage of the maturity pipeline for an item.
// Archived items and scratch entries have no in-kind successor.
func NextStatus(kind Kind, status Status) (Status, bool) {
	stages := pipeline[kind]
	i := slices.Index(stages, status)
	if i < 0 || i == len(stages)-1 {
		return "", false
	}
	return stages[i+1], true
}

// kindFields says which kind-scoped fields survive on an item of a kind
type kindFields struct {
	tags, aliases, priority, due, linkedRef bool
}

var scopedFields = map[Kind]kindFields{
	KindNote:    {tags: true, aliases: true},
	KindTask:    {tags: true, priority: true, due: true, linkedRef: true},
	KindScratch: {},
}

// MaskNewItem clears the kind-scoped fields that do not apply to in.Kind
func MaskNewItem(in NewItem) NewItem {
	f := scopedFields[in.Kind]
	if !f.tags {
		in.Tags = nil
	}
	if !f.aliases {
		in.Aliases = nil
	}
	if !f.priority {
		in.Priority = PriorityNone
	}
	if !f.due {
		in.Due = ""
	}
	if !f.linkedRef {
		in.LinkedRef = ""
	}
	return in
}

// ResolvePatch runs a requested patch through the taxonomy rules against the
// stored item and returns the patch that must be persisted. The steps run in
// a fixed order on a copy: conversion status mapping, field masking for the
// effective kind, then the export revert rule. Nothing is written here.
func ResolvePatch(existing Item, req Patch) (Patch, error) {
	out := req

	// 1. conversion
	kind := existing.Kind
	converting := false
	if req.Kind != nil && *req.Kind != existing.Kind {
		if _, ok := validStatuses[*req.Kind]; !ok {
			return Patch{}, &ValidationError{Field: "kind", Message: "unknown kind " + string(*req.Kind)}
		}
		mapped, ok := MapStatusOnConversion(existing.Kind, *req.Kind, existing.Status)
		if !ok {
			return Patch{}, &InvalidTransitionError{Kind: *req.Kind, Status: existing.Status}
		}
		kind = *req.Kind
		converting = true
		out.Status = &mapped
	} else {
		out.Kind = nil
	}

	// 2. masking
	f := scopedFields[kind]
	if !f.tags {
		out.Tags = maskField(converting, []string{})
	}
	if !f.aliases {
		out.Aliases = maskField(converting, []string{})
	}
	if !f.priority {
		out.Priority = maskField(converting, PriorityNone)
	}
	if !f.due {
		out.Due = maskField(converting, "")
	}
	if !f.linkedRef {
		out.LinkedRef = maskField(converting, "")
	}

	// 3. export revert
	status := existing.Status
	if out.Status != nil {
		status = *out.Status
	}
	if kind == KindNote && status == StatusExported {
		titleChanged := req.Title != nil && *req.Title != existing.Title
		bodyChanged := req.Body != nil && *req.Body != existing.Body
		if titleChanged || bodyChanged {
			permanent := StatusPermanent
			out.Status = &permanent
			status = permanent
		}
	}

	if !IsValid(kind, status) {
		return Patch{}, &InvalidTransitionError{Kind: kind, Status: status}
	}
	return out, nil
}

// maskField handles a field that does not apply to the effective kind:
// a conversion clears it, any other update ignores the request.
func maskField[T any](converting bool, cleared T) *T {
	if converting {
		return &cleared
	}
	return nil
}
