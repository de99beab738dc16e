// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/vault-safe/internal/auth"
)

// PromptBridge hands credential prompts raised by the access gate to the
// running bubbletea program and carries the answer back. It implements
// [auth.CredentialPrompter].
type PromptBridge struct {
	requests chan promptRequest
}

type promptRequest struct {
	ctx    context.Context
	prompt string
	reply  chan promptReply
}

type promptReply struct {
	secret string
	err    error
}

var _ auth.CredentialPrompter = (*PromptBridge)(nil)

// NewPromptBridge creates an unbuffered bridge. A prompt blocks until the UI
// picks it up, answers it, or ctx ends.
func NewPromptBridge() *PromptBridge {
	return &PromptBridge{requests: make(chan promptRequest)}
}

// PromptCredential implements [auth.CredentialPrompter].
func (b *PromptBridge) PromptCredential(ctx context.Context, prompt string) (string, error) {
	req := promptRequest{ctx: ctx, prompt: prompt, reply: make(chan promptReply, 1)}

	select {
	case b.requests <- req:
	case <-ctx.Done():
		return "", ctx.Err()
	}

	select {
	case r := <-req.reply:
		return r.secret, r.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// waitForPrompt blocks until the gate asks for a credential or ctx ends.
func (b *PromptBridge) waitForPrompt(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		select {
		case req := <-b.requests:
			return promptRequestedMsg{req: req}
		case <-ctx.Done():
			return nil
		}
	}
}

// answer delivers the user's response. reply has room for one value, so
// answering an abandoned request never blocks.
func (r promptRequest) answer(secret string, err error) {
	select {
	case r.reply <- promptReply{secret: secret, err: err}:
	default:
	}
}

// expired fires once the requesting operation stops waiting.
func (r promptRequest) expired() tea.Cmd {
	return func() tea.Msg {
		<-r.ctx.Done()
		return promptExpiredMsg{req: r}
	}
}
