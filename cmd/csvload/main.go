// Command csvload loads CSV datasets from the local data directory, the
// bundled assets or a remote bucket, and prints or serves them as tables.
package main

func main() {
	Execute()
}
