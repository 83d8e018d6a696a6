package node

// Kind distinguishes the three variants of work in the graph.
type Kind int

const (
	// StackKind is an infrastructure stack to deploy.
	StackKind Kind = iota
	// AssetBuildKind builds an asset locally.
	AssetBuildKind
	// AssetPublishKind uploads a built asset to its destination.
	AssetPublishKind
)

func (k Kind) String() string {
	switch k {
	case StackKind:
		return "stack"
	case AssetBuildKind:
		return "asset-build"
	case AssetPublishKind:
		return "asset-publish"
	default:
		return "unknown"
	}
}

// Packaging values understood for assets.
const (
	PackagingFile           = "file"
	PackagingContainerImage = "container-image"
)

// Stack is the payload of a stack node.
type Stack struct {
	// Name is the human-readable stack name.
	Name string
	// Environment is the deployment target, e.g. "aws://111111111111/eu-west-1".
	Environment string
	// Template points at the synthesized template of the stack.
	Template string
	// Command is the shell script that deploys the stack.
	Command string
}

// Asset is the shared payload of an asset's build and publish nodes.
type Asset struct {
	ID          string
	Packaging   string
	Source      string
	Fingerprint string

	BuildCommand   string
	PublishCommand string
}
