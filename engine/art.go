package engine

const titleArt = `
  ____                    _                     ____  ____   ____
 / __ \ _   _  __ _ _ __ | |_ _   _ _ __ ___  |  _ \|  _ \ / ___|
| |  | | | | |/ _` + "`" + ` | '_ \| __| | | | '_ ` + "`" + ` _ \ | |_) | |_) | |  _
| |__| | |_| | (_| | | | | |_| |_| | | | | | ||  _ <|  __/| |_| |
 \___\_\\__,_|\__,_|_| |_|\__|\__,_|_| |_| |_||_| \_\_|    \____|`

const ripArt = `
        ______________
       /              \
      /   R     I      \
     /          P       \
    |                    |
    |   measured and     |
    |   found wanting    |
    |                    |
 ___|____________________|___`

const menuText = `1) Begin new adventure
2) Load existing adventure
3) Help
4) Quit`

const helpText = `Welcome to the quantum frontier.

Your party of qaracters carries its health in qubits. Out in the
frontier you will run into quantum errors and other hazards; defeat
them by measuring their qubits down to |0>. Battles are won by knowing
when to measure and when to prepare first.

Save often: the save command prints a token you can paste back in at
the start menu to resume exactly where you left off.`
