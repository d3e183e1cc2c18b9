package markdown

import (
	"strings"
	"time"

	"github.com/mesh-intelligence/charter/pkg/phases"
	"github.com/mesh-intelligence/charter/pkg/types"
)

// Starter bodies for freshly created documents. Gated types get an exit
// criteria checklist up front; the placeholder item keeps terminal
// transitions blocked until real criteria are written and checked.
var bodyTemplates = map[types.DocumentType]string{
	types.TypeVision: `# {title}

## Purpose

## Current State

## Future State
`,
	types.TypeStrategy: `# {title}

## Problem Statement

## Approach

## Exit Criteria

- [ ] Define exit criteria for this strategy
`,
	types.TypeInitiative: `# {title}

## Context

## Goals & Non-Goals

## Implementation Plan

## Exit Criteria

- [ ] Define exit criteria for this initiative
`,
	types.TypeTask: `# {title}

## Objective

## Acceptance Criteria

- [ ] Define acceptance criteria for this task
`,
	types.TypeAdr: `# {title}

## Context

## Decision

## Consequences
`,
}

// NewDocument builds a document of the given type in its initial phase from
// the type's template.
func NewDocument(t types.DocumentType, title, parentID string, shortCode types.ShortCode) *types.Document {
	now := time.Now().UTC().Truncate(time.Second)
	body := strings.ReplaceAll(bodyTemplates[t], "{title}", title)

	return &types.Document{
		ID:        types.Slug(title),
		ShortCode: shortCode.String(),
		Type:      t,
		Title:     title,
		ParentID:  parentID,
		BlockedBy: []string{},
		Tags:      []types.Tag{types.PhaseTag(phases.Initial(t))},
		CreatedAt: now,
		UpdatedAt: now,
		Body:      body,
	}
}
