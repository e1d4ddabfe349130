package cmd

func init() {
	RegisterCommand(&Command{
		Name:  "version",
		Short: "Show version information",
		Long:  "Show the observe CLI version and build time.",
		Usage: "observe version",
		Run: func(env *Env, args []string) error {
			printVersion(env.Stdout)
			return nil
		},
	})
}
