package core

var (
	_ ConfigProvider  = (*CfgxConfigProvider)(nil)
	_ OptionsResolver = GoOptionsResolver{}
	_ RawConfigLoader = StaticConfigLoader{}
	_ error           = (*ClientError)(nil)
	_ Recognizer      = Envelope[struct{}]{}
)
