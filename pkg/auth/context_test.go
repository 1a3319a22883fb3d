package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestWithOperator_OperatorFromCtx(t *testing.T) {
	op := Operator{ID: uuid.New(), Name: "dana"}
	ctx := WithOperator(context.Background(), op)

	got, err := OperatorFromCtx(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != op {
		t.Fatalf("expected %v, got %v", op, got)
	}
}

func TestOperatorFromCtx_EmptyContext(t *testing.T) {
	_, err := OperatorFromCtx(context.Background())
	if !errors.Is(err, ErrOperatorNotFound) {
		t.Fatalf("expected ErrOperatorNotFound, got %v", err)
	}
}

func TestOperatorFromCtx_NilUUID(t *testing.T) {
	ctx := WithOperator(context.Background(), Operator{ID: uuid.Nil, Name: "ghost"})
	_, err := OperatorFromCtx(ctx)
	if !errors.Is(err, ErrOperatorNotFound) {
		t.Fatalf("expected ErrOperatorNotFound for uuid.Nil, got %v", err)
	}
}

func TestOperatorFromCtx_Isolation(t *testing.T) {
	op1 := Operator{ID: uuid.New(), Name: "dana"}
	op2 := Operator{ID: uuid.New(), Name: "sam"}

	ctx1 := WithOperator(context.Background(), op1)
	ctx2 := WithOperator(context.Background(), op2)

	got1, _ := OperatorFromCtx(ctx1)
	got2, _ := OperatorFromCtx(ctx2)

	if got1 != op1 {
		t.Fatalf("ctx1: expected %v, got %v", op1, got1)
	}
	if got2 != op2 {
		t.Fatalf("ctx2: expected %v, got %v", op2, got2)
	}
}
