package simulation

import (
	"fmt"
	"time"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/timestamppb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Messages understood by FlockActor. goakt mailboxes carry proto.Message values,
// the well-known types are enough for this small protocol:
//
//	Tick        *timestamppb.Timestamp   wall-clock time of the frame
//	Reset       *emptypb.Empty           start a new run
//	Parameters  *structpb.Struct         numeric overrides by JSON name
//	Stats query *wrapperspb.StringValue  answered with a *structpb.Struct

const statsQuery = "stats"

// NewTick builds the frame message for time now.
func NewTick(now time.Time) *timestamppb.Timestamp {
	return timestamppb.New(now)
}

// NewReset builds the reset message.
func NewReset() *emptypb.Empty {
	return &emptypb.Empty{}
}

// NewParameters builds a parameter update message.
func NewParameters(overrides map[string]float64) (*structpb.Struct, error) {
	fields := make(map[string]interface{}, len(overrides))
	for k, v := range overrides {
		fields[k] = v
	}
	msg, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, fmt.Errorf("failed to encode parameters: %w", err)
	}
	return msg, nil
}

// NewStatsRequest builds the stats query answered by FlockActor.
func NewStatsRequest() *wrapperspb.StringValue {
	return wrapperspb.String(statsQuery)
}

// Stats summarizes a FlockActor.
type Stats struct {
	State  string
	Run    uint64
	Ticks  uint64
	Agents int
}

func (s Stats) toProto() *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"state":  structpb.NewStringValue(s.State),
		"run":    structpb.NewNumberValue(float64(s.Run)),
		"ticks":  structpb.NewNumberValue(float64(s.Ticks)),
		"agents": structpb.NewNumberValue(float64(s.Agents)),
	}}
}

// ParseStats decodes the answer to NewStatsRequest.
func ParseStats(msg proto.Message) (Stats, error) {
	st, ok := msg.(*structpb.Struct)
	if !ok {
		return Stats{}, fmt.Errorf("unexpected stats response %T", msg)
	}
	f := st.GetFields()
	return Stats{
		State:  f["state"].GetStringValue(),
		Run:    uint64(f["run"].GetNumberValue()),
		Ticks:  uint64(f["ticks"].GetNumberValue()),
		Agents: int(f["agents"].GetNumberValue()),
	}, nil
}

func overridesFromProto(st *structpb.Struct) (map[string]float64, []string) {
	out := make(map[string]float64, len(st.GetFields()))
	var invalid []string
	for k, v := range st.GetFields() {
		switch kind := v.GetKind().(type) {
		case *structpb.Value_NumberValue:
			out[k] = kind.NumberValue
		case *structpb.Value_BoolValue:
			if kind.BoolValue {
				out[k] = 1
			} else {
				out[k] = 0
			}
		default:
			invalid = append(invalid, k)
		}
	}
	return out, invalid
}
