package core

import (
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// MUS serializers for the stored types. Field order is part of the encoding
// and must only ever be appended to.

// IDMUS serializes an ID as an unsigned varint.
var IDMUS = idMUS{}

type idMUS struct{}

func (idMUS) Marshal(v ID, bs []byte) (n int) {
	return varint.Uint64.Marshal(uint64(v), bs)
}

func (idMUS) Unmarshal(bs []byte) (v ID, n int, err error) {
	u, n, err := varint.Uint64.Unmarshal(bs)
	return ID(u), n, err
}

func (idMUS) Size(v ID) (size int) {
	return varint.Uint64.Size(uint64(v))
}

func (idMUS) Skip(bs []byte) (n int, err error) {
	return varint.Uint64.Skip(bs)
}

// StringsMUS serializes a string slice as a varint length followed by its elements.
var StringsMUS = stringsMUS{}

type stringsMUS struct{}

func (stringsMUS) Marshal(v []string, bs []byte) (n int) {
	n = varint.Int.Marshal(len(v), bs)
	for _, s := range v {
		n += ord.String.Marshal(s, bs[n:])
	}
	return n
}

func (stringsMUS) Unmarshal(bs []byte) (v []string, n int, err error) {
	length, n, err := varint.Int.Unmarshal(bs)
	if err != nil {
		return nil, n, err
	}
	if length < 0 {
		return nil, n, ErrNegativeLength
	}
	// Every element takes at least one byte.
	if length > len(bs)-n {
		return nil, n, ErrLengthOverflow
	}
	if length == 0 {
		return nil, n, nil
	}
	v = make([]string, length)
	for i := range v {
		var m int
		v[i], m, err = ord.String.Unmarshal(bs[n:])
		n += m
		if err != nil {
			return nil, n, err
		}
	}
	return v, n, nil
}

func (stringsMUS) Size(v []string) (size int) {
	size = varint.Int.Size(len(v))
	for _, s := range v {
		size += ord.String.Size(s)
	}
	return size
}

func (stringsMUS) Skip(bs []byte) (n int, err error) {
	length, n, err := varint.Int.Unmarshal(bs)
	if err != nil {
		return n, err
	}
	if length < 0 {
		return n, ErrNegativeLength
	}
	for i := 0; i < length; i++ {
		m, err := ord.String.Skip(bs[n:])
		n += m
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

// FeatureRecordMUS serializes a FeatureRecord.
var FeatureRecordMUS = featureRecordMUS{}

type featureRecordMUS struct{}

func (featureRecordMUS) Marshal(v FeatureRecord, bs []byte) (n int) {
	n = StringsMUS.Marshal(v.Tokens, bs)
	n += ord.String.Marshal(v.ItemType, bs[n:])
	n += StringsMUS.Marshal(v.Colors, bs[n:])
	n += ord.String.Marshal(v.Brand, bs[n:])
	n += StringsMUS.Marshal(v.UniqueMarks, bs[n:])
	n += StringsMUS.Marshal(v.Contained, bs[n:])
	n += StringsMUS.Marshal(v.Identifiers, bs[n:])
	return n
}

func (featureRecordMUS) Unmarshal(bs []byte) (v FeatureRecord, n int, err error) {
	var m int
	if v.Tokens, m, err = StringsMUS.Unmarshal(bs); err != nil {
		return v, m, err
	}
	n += m
	if v.ItemType, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + m, err
	}
	n += m
	if v.Colors, m, err = StringsMUS.Unmarshal(bs[n:]); err != nil {
		return v, n + m, err
	}
	n += m
	if v.Brand, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return v, n + m, err
	}
	n += m
	if v.UniqueMarks, m, err = StringsMUS.Unmarshal(bs[n:]); err != nil {
		return v, n + m, err
	}
	n += m
	if v.Contained, m, err = StringsMUS.Unmarshal(bs[n:]); err != nil {
		return v, n + m, err
	}
	n += m
	if v.Identifiers, m, err = StringsMUS.Unmarshal(bs[n:]); err != nil {
		return v, n + m, err
	}
	n += m
	return v, n, nil
}

func (featureRecordMUS) Size(v FeatureRecord) (size int) {
	size = StringsMUS.Size(v.Tokens)
	size += ord.String.Size(v.ItemType)
	size += StringsMUS.Size(v.Colors)
	size += ord.String.Size(v.Brand)
	size += StringsMUS.Size(v.UniqueMarks)
	size += StringsMUS.Size(v.Contained)
	size += StringsMUS.Size(v.Identifiers)
	return size
}

// ReportMUS serializes a Report. CreatedAt is stored with microsecond precision.
var ReportMUS = reportMUS{}

type reportMUS struct{}

func (reportMUS) Marshal(v Report, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Id, bs)
	n += ord.String.Marshal(string(v.Kind), bs[n:])
	n += ord.String.Marshal(v.Title, bs[n:])
	n += ord.String.Marshal(v.Description, bs[n:])
	n += ord.String.Marshal(v.LocationText, bs[n:])
	n += ord.String.Marshal(v.EventTime, bs[n:])
	n += ord.String.Marshal(v.Features, bs[n:])
	n += IDMUS.Marshal(v.DuplicateOf, bs[n:])
	n += ord.String.Marshal(v.ClarifyKey, bs[n:])
	n += ord.String.Marshal(v.ClarifyAnswer, bs[n:])
	n += varint.Int64.Marshal(v.CreatedAt.UnixMicro(), bs[n:])
	return n
}

func (reportMUS) Unmarshal(bs []byte) (v Report, n int, err error) {
	var (
		m    int
		kind string
	)
	strs := []*string{&kind, &v.Title, &v.Description, &v.LocationText, &v.EventTime, &v.Features}

	if v.Id, m, err = IDMUS.Unmarshal(bs); err != nil {
		return v, m, err
	}
	n += m
	for _, dst := range strs {
		if *dst, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
			return v, n + m, err
		}
		n += m
	}
	v.Kind = Kind(kind)
	if v.DuplicateOf, m, err = IDMUS.Unmarshal(bs[n:]); err != nil {
		return v, n + m, err
	}
	n += m
	for _, dst := range []*string{&v.ClarifyKey, &v.ClarifyAnswer} {
		if *dst, m, err = ord.String.Unmarshal(bs[n:]); err != nil {
			return v, n + m, err
		}
		n += m
	}
	micros, m, err := varint.Int64.Unmarshal(bs[n:])
	if err != nil {
		return v, n + m, err
	}
	n += m
	v.CreatedAt = time.UnixMicro(micros).UTC()
	return v, n, nil
}

func (reportMUS) Size(v Report) (size int) {
	size = IDMUS.Size(v.Id)
	for _, s := range []string{string(v.Kind), v.Title, v.Description, v.LocationText, v.EventTime, v.Features} {
		size += ord.String.Size(s)
	}
	size += IDMUS.Size(v.DuplicateOf)
	size += ord.String.Size(v.ClarifyKey)
	size += ord.String.Size(v.ClarifyAnswer)
	size += varint.Int64.Size(v.CreatedAt.UnixMicro())
	return size
}

// CheckpointMUS serializes a Checkpoint.
var CheckpointMUS = checkpointMUS{}

type checkpointMUS struct{}

func (checkpointMUS) Marshal(v Checkpoint, bs []byte) (n int) {
	n = ord.String.Marshal(v.ProcessorType, bs)
	n += IDMUS.Marshal(v.LastID, bs[n:])
	n += varint.Int64.Marshal(v.UpdatedAt.UnixMicro(), bs[n:])
	return n
}

func (checkpointMUS) Unmarshal(bs []byte) (v Checkpoint, n int, err error) {
	var m int
	if v.ProcessorType, m, err = ord.String.Unmarshal(bs); err != nil {
		return v, m, err
	}
	n += m
	if v.LastID, m, err = IDMUS.Unmarshal(bs[n:]); err != nil {
		return v, n + m, err
	}
	n += m
	micros, m, err := varint.Int64.Unmarshal(bs[n:])
	if err != nil {
		return v, n + m, err
	}
	n += m
	v.UpdatedAt = time.UnixMicro(micros).UTC()
	return v, n, nil
}

func (checkpointMUS) Size(v Checkpoint) (size int) {
	return ord.String.Size(v.ProcessorType) + IDMUS.Size(v.LastID) + varint.Int64.Size(v.UpdatedAt.UnixMicro())
}
