package model

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/schema"
)

func TestSchemaParse(t *testing.T) {
	for _, m := range []any{&TrainerModel{}, &ManagerModel{}, &InfrastructureModel{}} {
		s, err := schema.Parse(m, &sync.Map{}, schema.NamingStrategy{})
		require.NoError(t, err)
		assert.NotNil(t, s.LookUpField(mustDescriptor(t, s.Table).StatusCol))
	}

	s, err := schema.Parse(&TrainerModel{}, &sync.Map{}, schema.NamingStrategy{})
	require.NoError(t, err)
	f := s.LookUpField("trainer_specializations")
	require.NotNil(t, f)
	assert.Equal(t, schema.DataType("text"), f.DataType)
}

func mustDescriptor(t *testing.T, table string) Descriptor {
	t.Helper()
	k, err := ParseResourceKind(table)
	require.NoError(t, err)
	d, err := DescriptorFor(k)
	require.NoError(t, err)
	return d
}

func TestDescriptorStatusChecks(t *testing.T) {
	cases := []struct {
		kind     ResourceKind
		status   string
		valid    bool
		reserved bool
	}{
		{KindTrainer, "available", true, false},
		{KindTrainer, "assigned", true, true},
		{KindTrainer, "in_use", false, false},
		{KindManager, "assigned", true, true},
		{KindManager, "maintenance", false, false},
		{KindInfrastructure, "in_use", true, true},
		{KindInfrastructure, "maintenance", true, false},
		{KindInfrastructure, "assigned", false, false},
	}
	for _, tc := range cases {
		d, err := DescriptorFor(tc.kind)
		require.NoError(t, err)
		assert.Equal(t, tc.valid, d.ValidStatus(tc.status), "%s/%s", tc.kind, tc.status)
		assert.Equal(t, tc.reserved, d.HoldsReference(tc.status), "%s/%s", tc.kind, tc.status)
	}
}
