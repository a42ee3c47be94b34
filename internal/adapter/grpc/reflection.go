package grpc

import (
	"maps"

	"google.golang.org/grpc"
	"google.golang.org/grpc/reflection"
	reflectionv1 "google.golang.org/grpc/reflection/grpc_reflection_v1"

	umbralv1 "github.com/simaogato/umbral-backend/internal/adapter/grpc/umbral/v1"
)

// RegisterReflection serves gRPC reflection for the services backed by proto descriptors.
// UmbralService uses the JSON codec and has no file descriptor, so it is not listed.
func RegisterReflection(s *grpc.Server) {
	reflectionv1.RegisterServerReflectionServer(s, reflection.NewServerV1(reflection.ServerOptions{
		Services: describedServices{provider: s},
	}))
}

type describedServices struct {
	provider reflection.ServiceInfoProvider
}

func (d describedServices) GetServiceInfo() map[string]grpc.ServiceInfo {
	info := maps.Clone(d.provider.GetServiceInfo())
	delete(info, umbralv1.ServiceName)
	return info
}
