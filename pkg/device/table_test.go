package device

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/snmp-orm/snmp-orm-go/pkg/adapter"
	"github.com/snmp-orm/snmp-orm-go/pkg/adapter/memory"
	"github.com/snmp-orm/snmp-orm-go/pkg/adapter/mocks"
	"github.com/snmp-orm/snmp-orm-go/pkg/oid"
)

func tableProxy(t *testing.T, a adapter.Adapter) *TableProxy {
	t.Helper()
	d, err := New("h", testSchema(t, "Generic"), WithAdapter(a))
	require.NoError(t, err)

	v, err := d.GetAttribute(context.Background(), "sysORDescr")
	require.NoError(t, err)
	proxy, ok := v.(*TableProxy)
	require.True(t, ok, "table field yields a proxy, got %T", v)
	return proxy
}

func descrAgent() *memory.Adapter {
	return memory.MustNew(map[string]any{
		"1.3.6.1.2.1.1.9.1.3.1": "SNMPv2-MIB",
		"1.3.6.1.2.1.1.9.1.3.2": "IF-MIB",
		"1.3.6.1.2.1.1.9.1.3.3": "IP-MIB",
		"1.3.6.1.2.1.1.9.1.4.1": int64(0),
	})
}

func TestTableReadIssuesNoRequest(t *testing.T) {
	m := mocks.NewMockAdapter(t)
	proxy := tableProxy(t, m)
	assert.False(t, proxy.Loaded())
	assert.Equal(t, "sysORDescr", proxy.Field().Name())
}

func TestTableGetBeforeLoadIsTargeted(t *testing.T) {
	ctx := context.Background()
	m := mocks.NewMockAdapter(t)
	m.EXPECT().Get(mock.Anything, sysORDescr.Append(2)).Return("IF-MIB", nil).Once()
	m.EXPECT().Get(mock.Anything, sysORDescr.Append(9)).Return(nil, adapter.ErrNoSuchObject).Once()
	proxy := tableProxy(t, m)

	v, ok, err := proxy.Get(ctx, 2)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "IF-MIB", v)
	assert.False(t, proxy.Loaded())

	_, ok, err = proxy.Get(ctx, "9")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTableLoadOnceThenServeFromMemory(t *testing.T) {
	ctx := context.Background()
	agent := descrAgent()
	proxy := tableProxy(t, agent)

	n, err := proxy.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.True(t, proxy.Loaded())

	calls := agent.Counts()
	assert.Equal(t, memory.Counts{GetNext: 4}, calls)

	first, err := proxy.Rows(ctx)
	require.NoError(t, err)
	second, err := proxy.Rows(ctx)
	require.NoError(t, err)
	assert.Equal(t, first.Slice(), second.Slice())

	v, ok, err := proxy.Get(ctx, 3)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "IP-MIB", v)

	_, ok, err = proxy.Get(ctx, oid.OID{7})
	require.NoError(t, err)
	assert.False(t, ok)

	has, err := proxy.Contains(ctx, uint32(1))
	require.NoError(t, err)
	assert.True(t, has)

	var got []string
	for idx, v := range proxy.All(ctx) {
		got = append(got, idx.String()+"="+v.(string))
	}
	assert.Equal(t, []string{"1=SNMPv2-MIB", "2=IF-MIB", "3=IP-MIB"}, got)
	assert.Equal(t, "[1:SNMPv2-MIB 2:IF-MIB 3:IP-MIB]", proxy.String())

	assert.Equal(t, calls, agent.Counts(), "no requests after load")
}

func TestTableFailedLoadStaysUnloaded(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("timeout")
	m := mocks.NewMockAdapter(t)
	m.EXPECT().GetNext(mock.Anything, sysORDescr).Return(nil, nil, boom).Once()
	m.EXPECT().GetNext(mock.Anything, sysORDescr).Return(nil, nil, adapter.ErrEndOfMibView).Once()
	proxy := tableProxy(t, m)

	_, err := proxy.Len(ctx)
	assert.ErrorIs(t, err, boom)
	assert.False(t, proxy.Loaded())

	for idx, v := range proxy.All(ctx) {
		assert.Nil(t, idx)
		assert.Nil(t, v)
	}
	assert.True(t, proxy.Loaded())
}

func TestTableAllYieldsLoadError(t *testing.T) {
	boom := errors.New("timeout")
	m := mocks.NewMockAdapter(t)
	m.EXPECT().GetNext(mock.Anything, sysORDescr).Return(nil, nil, boom).Once()
	proxy := tableProxy(t, m)

	var yielded []any
	for idx, v := range proxy.All(context.Background()) {
		assert.Nil(t, idx)
		yielded = append(yielded, v)
	}
	assert.Equal(t, []any{boom}, yielded)
}

func TestToIndex(t *testing.T) {
	tests := []struct {
		name    string
		in      any
		want    oid.OID
		wantErr bool
	}{
		{"int", 5, oid.OID{5}, false},
		{"uint32", uint32(7), oid.OID{7}, false},
		{"int64", int64(1), oid.OID{1}, false},
		{"dotted string", "10.1", oid.OID{10, 1}, false},
		{"numeric string", "3", oid.OID{3}, false},
		{"oid", oid.OID{1, 2}, oid.OID{1, 2}, false},
		{"uint32 slice", []uint32{4, 5}, oid.OID{4, 5}, false},
		{"int slice", []int{6, 7}, oid.OID{6, 7}, false},
		{"negative", -1, nil, true},
		{"negative arc", []int{1, -1}, nil, true},
		{"empty oid", oid.OID{}, nil, true},
		{"nil", nil, nil, true},
		{"garbage", "a.b", nil, true},
		{"struct", struct{}{}, nil, true},
		{"integral float", 3.0, oid.OID{3}, false},
		{"fractional float", 2.7, nil, true},
		{"fractional float32", float32(0.5), nil, true},
		{"bool", true, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToIndex(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
